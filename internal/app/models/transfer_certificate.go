package models

import "time"

// TransferCertificate records a TC issued to a student. Issuing one marks the
// student TRANSFERRED; at most one certificate exists per student.
type TransferCertificate struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	SchoolID  int64     `json:"schoolId" db:"school_id"`
	SerialNo  string    `json:"serialNo" db:"serial_no"`
	IssueDate time.Time `json:"issueDate" db:"issue_date"`
	Reason    string    `json:"reason" db:"reason"`
	LastClass string    `json:"lastClass" db:"last_class"`
	Conduct   string    `json:"conduct,omitempty" db:"conduct"`
	Remarks   string    `json:"remarks,omitempty" db:"remarks"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
