package service

import "context"

// IAuthService defines the interface for the auth service
type IAuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error)
	ResendOTP(ctx context.Context, req ResendOTPRequest) (*ResendOTPResponse, error)
	Logout(ctx context.Context, req LogoutRequest) (*LogoutResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error)
	GetAccount(ctx context.Context, req GetAccountRequest) (*GetAccountResponse, error)
}
