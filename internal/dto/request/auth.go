package request

type RegisterRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	GivenName  string  `json:"given_name" validate:"required,min=1,max=100"`
	FamilyName string  `json:"family_name" validate:"required,min=1,max=100"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	BirthDate  *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}
