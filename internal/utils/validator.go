package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator library
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// RegisterPayload validation
type RegisterPayload struct {
	DisplayName string `validate:"required,max=100"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=8"`
}

// LoginPayload validation
type LoginPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// VerifyOTPPayload validation
type VerifyOTPPayload struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=6,numeric"`
}

// ResetPasswordPayload validation
type ResetPasswordPayload struct {
	Token       string `validate:"required,len=64,hexadecimal"`
	NewPassword string `validate:"required,min=8"`
}

// Validate validates a struct
func (v *Validator) Validate(data interface{}) error {
	return v.validate.Struct(data)
}

// ValidateEmail validates an email string
func (v *Validator) ValidateEmail(email string) error {
	return v.validate.Var(email, "required,email")
}

// ValidatePassword validates a password string
func (v *Validator) ValidatePassword(password string) error {
	if err := v.validate.Var(password, "required,min=8"); err != nil {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// ValidateOTPCode validates an OTP code
func (v *Validator) ValidateOTPCode(code string) error {
	if len(code) != OTPLength {
		return fmt.Errorf("otp code must be exactly %d digits", OTPLength)
	}
	return v.validate.Var(code, "numeric")
}

// ValidateResetToken validates a password-reset token string
func (v *Validator) ValidateResetToken(token string) error {
	if len(token) != ResetTokenBytes*2 {
		return fmt.Errorf("reset token must be exactly %d characters", ResetTokenBytes*2)
	}
	return v.validate.Var(token, "hexadecimal")
}
