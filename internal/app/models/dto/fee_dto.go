package dto

// CreateFeeStructureRequest creates the annual fee breakdown for a class.
type CreateFeeStructureRequest struct {
	SchoolID     int64   `json:"schoolId" validate:"required,gt=0"`
	ClassName    string  `json:"className" validate:"required"`
	AdmissionFee float64 `json:"admissionFee" validate:"gte=0"`
	TuitionFee   float64 `json:"tuitionFee" validate:"gte=0"`
	TransportFee float64 `json:"transportFee" validate:"gte=0"`
	LibraryFee   float64 `json:"libraryFee" validate:"gte=0"`
	ExamFee      float64 `json:"examFee" validate:"gte=0"`
	MiscFee      float64 `json:"miscFee" validate:"gte=0"`
}

// UpdateFeeStructureRequest replaces the fee heads of an existing structure.
type UpdateFeeStructureRequest struct {
	AdmissionFee float64 `json:"admissionFee" validate:"gte=0"`
	TuitionFee   float64 `json:"tuitionFee" validate:"gte=0"`
	TransportFee float64 `json:"transportFee" validate:"gte=0"`
	LibraryFee   float64 `json:"libraryFee" validate:"gte=0"`
	ExamFee      float64 `json:"examFee" validate:"gte=0"`
	MiscFee      float64 `json:"miscFee" validate:"gte=0"`
}

// RecordPaymentRequest records one collected payment against a student.
type RecordPaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentMode string  `json:"paymentMode" validate:"required,oneof=CASH CHEQUE ONLINE"`
	Note        string  `json:"note"`
}

// FeeBalanceResponse reports a student's dues against the class fee structure.
type FeeBalanceResponse struct {
	StudentID   int64   `json:"studentId"`
	ClassName   string  `json:"className"`
	TotalAnnual float64 `json:"totalAnnual"`
	TotalPaid   float64 `json:"totalPaid"`
	Balance     float64 `json:"balance"`
}
