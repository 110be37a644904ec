package dto

// IssueCertificateRequest issues a transfer certificate for a student.
// IssueDate is optional and defaults to today.
type IssueCertificateRequest struct {
	Reason    string `json:"reason" validate:"required"`
	IssueDate string `json:"issueDate"`
	Conduct   string `json:"conduct"`
	Remarks   string `json:"remarks"`
}
