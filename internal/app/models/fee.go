package models

import "time"

// FeeStructure is the annual fee breakdown for one class of one school.
type FeeStructure struct {
	ID           int64     `json:"id" db:"id"`
	SchoolID     int64     `json:"schoolId" db:"school_id"`
	ClassName    string    `json:"className" db:"class_name"`
	AdmissionFee float64   `json:"admissionFee" db:"admission_fee"`
	TuitionFee   float64   `json:"tuitionFee" db:"tuition_fee"`
	TransportFee float64   `json:"transportFee" db:"transport_fee"`
	LibraryFee   float64   `json:"libraryFee" db:"library_fee"`
	ExamFee      float64   `json:"examFee" db:"exam_fee"`
	MiscFee      float64   `json:"miscFee" db:"misc_fee"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// TotalAnnual is the sum of all fee heads.
func (f *FeeStructure) TotalAnnual() float64 {
	return f.AdmissionFee + f.TuitionFee + f.TransportFee + f.LibraryFee + f.ExamFee + f.MiscFee
}

// FeePayment records one collected payment against a student.
type FeePayment struct {
	ID          int64       `json:"id" db:"id"`
	StudentID   int64       `json:"studentId" db:"student_id"`
	SchoolID    int64       `json:"schoolId" db:"school_id"`
	ReceiptNo   string      `json:"receiptNo" db:"receipt_no"`
	Amount      float64     `json:"amount" db:"amount"`
	PaymentMode PaymentMode `json:"paymentMode" db:"payment_mode"`
	Note        string      `json:"note,omitempty" db:"note"`
	PaidAt      time.Time   `json:"paidAt" db:"paid_at"`
}
