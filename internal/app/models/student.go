package models

import "time"

// Student is the root of the admission aggregate, based on the 'students'
// table. A student row exists if and only if all six dependent records exist;
// the repository enforces this with a single all-or-nothing transaction.
type Student struct {
	ID            int64         `json:"id" db:"id"`
	SchoolID      int64         `json:"schoolId" db:"school_id"`
	AdmissionNo   string        `json:"admissionNo" db:"admission_no"`
	FirstName     string        `json:"firstName" db:"first_name"`
	MiddleName    string        `json:"middleName,omitempty" db:"middle_name"`
	LastName      string        `json:"lastName" db:"last_name"`
	DateOfBirth   time.Time     `json:"dateOfBirth" db:"date_of_birth"`
	AdmissionDate time.Time     `json:"admissionDate" db:"admission_date"`
	Gender        string        `json:"gender" db:"gender"`
	BloodGroup    string        `json:"bloodGroup,omitempty" db:"blood_group"`
	Nationality   string        `json:"nationality,omitempty" db:"nationality"`
	Religion      string        `json:"religion,omitempty" db:"religion"`
	Category      string        `json:"category,omitempty" db:"category"`
	MobileNumber  string        `json:"mobileNumber" db:"mobile_number"`
	Email         string        `json:"email,omitempty" db:"email"`
	ClassName     string        `json:"className" db:"class_name"`
	Section       string        `json:"section,omitempty" db:"section"`
	RollNumber    string        `json:"rollNumber,omitempty" db:"roll_number"`
	AddressHouse  string        `json:"addressHouse,omitempty" db:"address_house"`
	AddressStreet string        `json:"addressStreet,omitempty" db:"address_street"`
	AddressCity   string        `json:"addressCity" db:"address_city"`
	AddressState  string        `json:"addressState" db:"address_state"`
	AddressPin    string        `json:"addressPin,omitempty" db:"address_pin"`
	Status        StudentStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`

	// Dependents (populated when the aggregate is loaded)
	Parent    *ParentInfo    `json:"parentInfo,omitempty"`
	Session   *SessionInfo   `json:"sessionInfo,omitempty"`
	Transport *TransportInfo `json:"transportInfo,omitempty"`
	Documents *DocumentsInfo `json:"documents,omitempty"`
	Education *EducationInfo `json:"educationInfo,omitempty"`
	Other     *OtherInfo     `json:"otherInfo,omitempty"`
}

// ParentInfo holds father/mother/guardian details for one student.
type ParentInfo struct {
	ID               int64  `json:"id" db:"id"`
	StudentID        int64  `json:"studentId" db:"student_id"`
	FatherName       string `json:"fatherName" db:"father_name"`
	FatherOccupation string `json:"fatherOccupation,omitempty" db:"father_occupation"`
	FatherContact    string `json:"fatherContact,omitempty" db:"father_contact"`
	FatherEmail      string `json:"fatherEmail,omitempty" db:"father_email"`
	MotherName       string `json:"motherName" db:"mother_name"`
	MotherOccupation string `json:"motherOccupation,omitempty" db:"mother_occupation"`
	MotherContact    string `json:"motherContact,omitempty" db:"mother_contact"`
	GuardianName     string `json:"guardianName,omitempty" db:"guardian_name"`
	GuardianRelation string `json:"guardianRelation,omitempty" db:"guardian_relation"`
	GuardianContact  string `json:"guardianContact,omitempty" db:"guardian_contact"`
}

// SessionSnapshot is one class/section placement. Two snapshots of the same
// shape exist per student: one frozen at admission time, one mutable as the
// student progresses.
type SessionSnapshot struct {
	Group    string `json:"group,omitempty"`
	Stream   string `json:"stream,omitempty"`
	Class    string `json:"class,omitempty"`
	Section  string `json:"section,omitempty"`
	RollNo   string `json:"rollNo,omitempty"`
	Semester string `json:"semester,omitempty"`
	FeeGroup string `json:"feeGroup,omitempty"`
	House    string `json:"house,omitempty"`
}

// SessionInfo holds the admit-time and current session snapshots.
type SessionInfo struct {
	ID        int64           `json:"id" db:"id"`
	StudentID int64           `json:"studentId" db:"student_id"`
	Admit     SessionSnapshot `json:"admitSession"`
	Current   SessionSnapshot `json:"currentSession"`
}

// TransportInfo holds how the student travels to school.
type TransportInfo struct {
	ID            int64  `json:"id" db:"id"`
	StudentID     int64  `json:"studentId" db:"student_id"`
	Mode          string `json:"mode,omitempty" db:"mode"`
	Area          string `json:"area,omitempty" db:"area"`
	Route         string `json:"route,omitempty" db:"route"`
	Stand         string `json:"stand,omitempty" db:"stand"`
	VehicleNumber string `json:"vehicleNumber,omitempty" db:"vehicle_number"`
	PickupPoint   string `json:"pickupPoint,omitempty" db:"pickup_point"`
}

// DocumentsInfo stores served paths of uploaded documents. A nil path means
// the document was never uploaded.
type DocumentsInfo struct {
	ID                      int64   `json:"id" db:"id"`
	StudentID               int64   `json:"studentId" db:"student_id"`
	RegistrationNo          string  `json:"registrationNo,omitempty" db:"registration_no"`
	BirthCertificatePath    *string `json:"birthCertificatePath" db:"birth_certificate_path"`
	TransferCertificatePath *string `json:"transferCertificatePath" db:"transfer_certificate_path"`
	MarkSheetPath           *string `json:"markSheetPath" db:"mark_sheet_path"`
	AadhaarCardPath         *string `json:"aadhaarCardPath" db:"aadhaar_card_path"`
	StudentPhotoPath        *string `json:"studentPhotoPath" db:"student_photo_path"`
	FatherPhotoPath         *string `json:"fatherPhotoPath" db:"father_photo_path"`
	MotherPhotoPath         *string `json:"motherPhotoPath" db:"mother_photo_path"`
}

// EducationInfo is the previous-school record.
type EducationInfo struct {
	ID            int64      `json:"id" db:"id"`
	StudentID     int64      `json:"studentId" db:"student_id"`
	LastSchool    string     `json:"lastSchool,omitempty" db:"last_school"`
	SchoolAddress string     `json:"schoolAddress,omitempty" db:"school_address"`
	ClassAttended string     `json:"classAttended,omitempty" db:"class_attended"`
	TCNumber      string     `json:"tcNumber,omitempty" db:"tc_number"`
	TCDate        *time.Time `json:"tcDate,omitempty" db:"tc_date"`
	AcademicYear  string     `json:"academicYear,omitempty" db:"academic_year"`
}

// OtherInfo holds categorical flags, each defaulting to "no" when absent.
type OtherInfo struct {
	ID                int64  `json:"id" db:"id"`
	StudentID         int64  `json:"studentId" db:"student_id"`
	BelongsToBPL      string `json:"belongsToBPL" db:"belongs_to_bpl"`
	Minority          string `json:"minority" db:"minority"`
	SingleParent      string `json:"singleParent" db:"single_parent"`
	Disability        string `json:"disability" db:"disability"`
	DisabilityDetails string `json:"disabilityDetails,omitempty" db:"disability_details"`
	OnlyChild         string `json:"onlyChild" db:"only_child"`
}
