package dto

// UpdateStudentRequest updates a student's root scalar fields and,
// conditionally, its parent record. Only non-nil fields are applied; the
// whole update runs in one transaction with any parent change.
type UpdateStudentRequest struct {
	FirstName    *string `json:"firstName,omitempty"`
	MiddleName   *string `json:"middleName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	MobileNumber *string `json:"mobileNumber,omitempty"`
	Email        *string `json:"email,omitempty"`
	ClassName    *string `json:"className,omitempty"`
	Section      *string `json:"section,omitempty"`
	RollNumber   *string `json:"rollNumber,omitempty"`
	AddressCity  *string `json:"addressCity,omitempty"`
	AddressState *string `json:"addressState,omitempty"`

	FatherName    *string `json:"fatherName,omitempty"`
	FatherContact *string `json:"fatherContact,omitempty"`
	MotherName    *string `json:"motherName,omitempty"`
	MotherContact *string `json:"motherContact,omitempty"`
	GuardianName  *string `json:"guardianName,omitempty"`
}

// HasParentFields reports whether the update touches the ParentInfo record.
func (r *UpdateStudentRequest) HasParentFields() bool {
	return r.FatherName != nil || r.FatherContact != nil ||
		r.MotherName != nil || r.MotherContact != nil || r.GuardianName != nil
}
