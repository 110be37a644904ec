package dto

// LoginRequest authenticates a staff account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the signed-in identity.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	UserID    int64  `json:"userId"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	SchoolID  int64  `json:"schoolId"`
}

// CreateSchoolRequest registers a new school.
type CreateSchoolRequest struct {
	Name    string `json:"name" validate:"required"`
	Code    string `json:"code" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}
