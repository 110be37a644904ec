package dto

import (
	"net/url"
	"strings"
)

// AdmissionRequest is the server-side view of the flattened admission form.
// Nested groups arrive as dotted keys ("father.name"); ParseAdmissionForm
// routes them back into the groups below. Date fields stay as raw strings
// here; the service parses them so it can name the failing field.
type AdmissionRequest struct {
	FirstName     string
	MiddleName    string
	LastName      string
	DateOfBirth   string
	AdmissionDate string
	Gender        string
	BloodGroup    string
	Nationality   string
	Religion      string
	Category      string
	AdmissionNo   string
	MobileNumber  string
	Email         string
	ClassName     string
	Section       string
	RollNumber    string
	SchoolID      string // raw; non-numeric or absent falls back to the configured default

	Address        AddressGroup
	Father         FatherGroup
	Mother         MotherGroup
	Guardian       GuardianGroup
	Academic       AcademicGroup
	AdmitSession   SessionGroup
	CurrentSession SessionGroup
	Transport      TransportGroup
	LastEducation  EducationGroup
	Other          OtherGroup
}

type AddressGroup struct {
	HouseNo string
	Street  string
	City    string
	State   string
	PinCode string
}

type FatherGroup struct {
	Name          string
	Occupation    string
	ContactNumber string
	Email         string
}

type MotherGroup struct {
	Name          string
	Occupation    string
	ContactNumber string
}

type GuardianGroup struct {
	Name          string
	Relation      string
	ContactNumber string
}

type AcademicGroup struct {
	RegistrationNo string
}

type SessionGroup struct {
	Group    string
	Stream   string
	Class    string
	Section  string
	RollNo   string
	Semester string
	FeeGroup string
	House    string
}

type TransportGroup struct {
	Mode          string
	Area          string
	Route         string
	Stand         string
	VehicleNumber string
	PickupPoint   string
}

type EducationGroup struct {
	School        string
	Address       string
	ClassAttended string
	TCNumber      string
	TCDate        string
	AcademicYear  string
}

type OtherGroup struct {
	BelongsToBPL      string
	Minority          string
	SingleParent      string
	Disability        string
	DisabilityDetails string
	OnlyChild         string
}

// DocumentSlots are the accepted file part names, without the "documents."
// prefix. Any other file part is ignored.
var DocumentSlots = []string{
	"birthCertificate",
	"transferCertificate",
	"markSheet",
	"aadhaarCard",
	"studentPhoto",
	"fatherPhoto",
	"motherPhoto",
}

// ParseAdmissionForm builds an AdmissionRequest from a flattened form body.
func ParseAdmissionForm(values url.Values) *AdmissionRequest {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }

	session := func(prefix string) SessionGroup {
		return SessionGroup{
			Group:    get(prefix + ".group"),
			Stream:   get(prefix + ".stream"),
			Class:    get(prefix + ".class"),
			Section:  get(prefix + ".section"),
			RollNo:   get(prefix + ".rollNo"),
			Semester: get(prefix + ".semester"),
			FeeGroup: get(prefix + ".feeGroup"),
			House:    get(prefix + ".house"),
		}
	}

	return &AdmissionRequest{
		FirstName:     get("firstName"),
		MiddleName:    get("middleName"),
		LastName:      get("lastName"),
		DateOfBirth:   get("dateOfBirth"),
		AdmissionDate: get("admissionDate"),
		Gender:        get("gender"),
		BloodGroup:    get("bloodGroup"),
		Nationality:   get("nationality"),
		Religion:      get("religion"),
		Category:      get("category"),
		AdmissionNo:   get("admissionNo"),
		MobileNumber:  get("mobileNumber"),
		Email:         get("email"),
		ClassName:     get("className"),
		Section:       get("section"),
		RollNumber:    get("rollNumber"),
		SchoolID:      get("schoolId"),
		Address: AddressGroup{
			HouseNo: get("address.houseNo"),
			Street:  get("address.street"),
			City:    get("address.city"),
			State:   get("address.state"),
			PinCode: get("address.pinCode"),
		},
		Father: FatherGroup{
			Name:          get("father.name"),
			Occupation:    get("father.occupation"),
			ContactNumber: get("father.contactNumber"),
			Email:         get("father.email"),
		},
		Mother: MotherGroup{
			Name:          get("mother.name"),
			Occupation:    get("mother.occupation"),
			ContactNumber: get("mother.contactNumber"),
		},
		Guardian: GuardianGroup{
			Name:          get("guardian.name"),
			Relation:      get("guardian.relation"),
			ContactNumber: get("guardian.contactNumber"),
		},
		Academic: AcademicGroup{
			RegistrationNo: get("academic.registrationNo"),
		},
		AdmitSession:   session("admitSession"),
		CurrentSession: session("currentSession"),
		Transport: TransportGroup{
			Mode:          get("transport.mode"),
			Area:          get("transport.area"),
			Route:         get("transport.route"),
			Stand:         get("transport.stand"),
			VehicleNumber: get("transport.vehicleNumber"),
			PickupPoint:   get("transport.pickupPoint"),
		},
		LastEducation: EducationGroup{
			School:        get("lastEducation.school"),
			Address:       get("lastEducation.address"),
			ClassAttended: get("lastEducation.classAttended"),
			TCNumber:      get("lastEducation.tcNumber"),
			TCDate:        get("lastEducation.tcDate"),
			AcademicYear:  get("lastEducation.academicYear"),
		},
		Other: OtherGroup{
			BelongsToBPL:      get("other.belongsToBPL"),
			Minority:          get("other.minority"),
			SingleParent:      get("other.singleParent"),
			Disability:        get("other.disability"),
			DisabilityDetails: get("other.disabilityDetails"),
			OnlyChild:         get("other.onlyChild"),
		},
	}
}

// MissingRequired returns the human-readable labels of required fields that
// are empty, in a fixed order. An empty slice means the request may proceed
// to date parsing and persistence.
func (r *AdmissionRequest) MissingRequired() []string {
	checks := []struct {
		value string
		label string
	}{
		{r.FirstName, "First Name"},
		{r.LastName, "Last Name"},
		{r.AdmissionNo, "Admission No"},
		{r.Gender, "Gender"},
		{r.MobileNumber, "Mobile Number"},
		{r.ClassName, "Class Name"},
		{r.Address.City, "City"},
		{r.Address.State, "State"},
		{r.Father.Name, "Father's Name"},
		{r.Mother.Name, "Mother's Name"},
	}

	var missing []string
	for _, c := range checks {
		if c.value == "" {
			missing = append(missing, c.label)
		}
	}
	return missing
}

// AdmissionResponse is the confirmation payload returned on a successful admission.
type AdmissionResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AdmissionNo string `json:"admissionNo"`
}
