package models

// Role defines the user role type
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleSchool  Role = "SCHOOL"
	RoleTeacher Role = "TEACHER"
)

// StudentStatus tracks a student's enrollment state
type StudentStatus string

const (
	StudentActive      StudentStatus = "ACTIVE"
	StudentTransferred StudentStatus = "TRANSFERRED"
)

// PaymentMode is how a fee payment was made
type PaymentMode string

const (
	PaymentCash   PaymentMode = "CASH"
	PaymentCheque PaymentMode = "CHEQUE"
	PaymentOnline PaymentMode = "ONLINE"
)
