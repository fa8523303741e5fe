package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/insurai/authcore/internal/domain"
	"github.com/insurai/authcore/internal/notifier"
	"github.com/insurai/authcore/internal/repository"
	"github.com/insurai/authcore/internal/token"
	"github.com/insurai/authcore/internal/utils"
)

// Messages shared by the oracle-sensitive failure paths. Bad email and bad
// password produce the same text, as do every OTP and reset failure mode.
const (
	msgBadCredentials = "invalid email or password"
	msgBadOTP         = "invalid or expired otp"
	msgBadResetToken  = "invalid or expired reset token"
)

// AuthService handles authentication business logic
type AuthService struct {
	accounts  repository.IAccountRepository
	hasher    *utils.PasswordHasher
	validator *utils.Validator
	issuer    *token.Issuer
	notifier  notifier.Notifier
	config    AuthServiceConfig
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	// OTPExpiry is the login challenge window (default 5 minutes).
	OTPExpiry time.Duration
	// ResetExpiry is the password-reset window (default 15 minutes).
	ResetExpiry time.Duration
	// ResetURLBase is the front-end page the reset link points at; the token
	// is appended as a query parameter.
	ResetURLBase string
}

// NewAuthService creates a new auth service
func NewAuthService(
	accounts repository.IAccountRepository,
	hasher *utils.PasswordHasher,
	validator *utils.Validator,
	issuer *token.Issuer,
	notify notifier.Notifier,
	config AuthServiceConfig,
) *AuthService {
	return &AuthService{
		accounts:  accounts,
		hasher:    hasher,
		validator: validator,
		issuer:    issuer,
		notifier:  notify,
		config:    config,
	}
}

// RegisterRequest represents registration input
type RegisterRequest struct {
	DisplayName string
	Email       string
	Password    string
}

// RegisterResponse represents registration output
type RegisterResponse struct {
	Message   string
	AccountID string
}

// Register creates a new account with a hashed password. No session is issued
// and no challenge is outstanding afterwards.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if req.DisplayName == "" {
		return nil, &domain.ValidationError{Message: "display name is required", Field: "displayName"}
	}
	if err := s.validator.ValidateEmail(req.Email); err != nil {
		return nil, &domain.ValidationError{Message: "a valid email is required", Field: "email"}
	}
	if err := s.validator.ValidatePassword(req.Password); err != nil {
		return nil, &domain.ValidationError{Message: "password must be at least 8 characters", Field: "password"}
	}

	exists, err := s.accounts.ExistsEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &domain.ConflictError{Message: "email already registered"}
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to process password", Err: err}
	}

	account := &domain.Account{
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	// Create translates the unique-index violation to ConflictError, which
	// covers the window between the exists check and the insert.
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return &RegisterResponse{
		Message:   "registration successful",
		AccountID: account.ID.String(),
	}, nil
}

// LoginRequest represents login input
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse represents login output. The OTP itself is never returned;
// it travels only through the notifier channel.
type LoginResponse struct {
	Message string
}

// Login verifies the password and, on success, issues a fresh OTP challenge.
// A session token is only granted later by VerifyOTP.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.ValidateEmail(req.Email); err != nil {
		return nil, &domain.ValidationError{Message: "a valid email is required", Field: "email"}
	}

	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.UnauthorizedError{Message: msgBadCredentials}
		}
		return nil, err
	}

	if !s.hasher.Verify(account.PasswordHash, req.Password) {
		return nil, &domain.UnauthorizedError{Message: msgBadCredentials}
	}

	if err := s.issueOTP(ctx, account); err != nil {
		return nil, err
	}

	return &LoginResponse{Message: "otp sent to registered email"}, nil
}

// VerifyOTPRequest represents OTP verification input
type VerifyOTPRequest struct {
	Email string
	Code  string
}

// VerifyOTPResponse represents OTP verification output
type VerifyOTPResponse struct {
	Message      string
	SessionToken string
}

// VerifyOTP consumes the pending challenge and issues a session token. Every
// failure mode (unknown account, no challenge, wrong code, expired code)
// collapses into the same error.
func (s *AuthService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error) {
	if err := s.validator.ValidateOTPCode(req.Code); err != nil {
		return nil, &domain.UnauthorizedError{Message: msgBadOTP}
	}

	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.UnauthorizedError{Message: msgBadOTP}
		}
		return nil, err
	}

	consumed, err := s.accounts.ConsumePendingOTP(ctx, account.ID, req.Code, time.Now())
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, &domain.UnauthorizedError{Message: msgBadOTP}
	}

	sessionToken, err := s.issuer.Issue(account.ID, account.Email)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to issue session token", Err: err}
	}

	return &VerifyOTPResponse{
		Message:      "otp verified successfully",
		SessionToken: sessionToken,
	}, nil
}

// ResendOTPRequest represents resend input
type ResendOTPRequest struct {
	Email string
}

// ResendOTPResponse represents resend output
type ResendOTPResponse struct {
	Message string
}

// ResendOTP unconditionally replaces any pending challenge with a fresh code
// and a fresh expiry. Unlike VerifyOTP, an unknown email surfaces as not
// found, matching the upstream contract.
func (s *AuthService) ResendOTP(ctx context.Context, req ResendOTPRequest) (*ResendOTPResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.issueOTP(ctx, account); err != nil {
		return nil, err
	}

	return &ResendOTPResponse{Message: "otp resent to registered email"}, nil
}

// LogoutRequest represents logout input
type LogoutRequest struct {
	AccountID string
}

// LogoutResponse represents logout output
type LogoutResponse struct {
	Message string
}

// Logout is a stateless acknowledgment. Session tokens are self-contained,
// so there is nothing to invalidate server-side; discarding the token is the
// caller's job.
func (s *AuthService) Logout(ctx context.Context, req LogoutRequest) (*LogoutResponse, error) {
	return &LogoutResponse{Message: "logged out"}, nil
}

// ForgotPasswordRequest represents forgot-password input
type ForgotPasswordRequest struct {
	Email string
}

// ForgotPasswordResponse represents forgot-password output
type ForgotPasswordResponse struct {
	Message string
}

// ForgotPassword stores a fresh single-use reset token and mails a link built
// from it. Any previously pending token is replaced and thereby invalidated.
func (s *AuthService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	resetToken, err := utils.GenerateResetToken()
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to generate reset token", Err: err}
	}

	expiresAt := time.Now().Add(s.config.ResetExpiry)
	if err := s.accounts.SetPendingReset(ctx, account.ID, resetToken, expiresAt); err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset link: %s?token=%s\n\nThe link expires in %d minutes. If you did not request this, you can ignore this email.",
		s.config.ResetURLBase,
		resetToken,
		int(s.config.ResetExpiry.Minutes()),
	)
	msg := notifier.Message{
		Recipient: account.Email,
		Subject:   "Reset your password",
		Body:      body,
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		// The stored token stays valid; only delivery failed.
		return nil, &domain.InternalError{Message: "failed to deliver reset email", Err: err}
	}

	return &ForgotPasswordResponse{Message: "password reset link sent to registered email"}, nil
}

// ResetPasswordRequest represents reset-password input
type ResetPasswordRequest struct {
	Token       string
	NewPassword string
}

// ResetPasswordResponse represents reset-password output
type ResetPasswordResponse struct {
	Message string
}

// ResetPassword consumes the reset token and replaces the password hash in a
// single conditional update. An unknown and an expired token are
// indistinguishable to the caller. A pending login OTP, if any, is left
// untouched.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error) {
	if err := s.validator.ValidatePassword(req.NewPassword); err != nil {
		return nil, &domain.ValidationError{Message: "password must be at least 8 characters", Field: "newPassword"}
	}
	if err := s.validator.ValidateResetToken(req.Token); err != nil {
		return nil, &domain.UnauthorizedError{Message: msgBadResetToken}
	}

	newHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to process password", Err: err}
	}

	consumed, err := s.accounts.ConsumePendingReset(ctx, req.Token, newHash, time.Now())
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, &domain.UnauthorizedError{Message: msgBadResetToken}
	}

	return &ResetPasswordResponse{Message: "password reset successfully"}, nil
}

// GetAccountRequest represents account lookup input
type GetAccountRequest struct {
	AccountID string
}

// AccountData contains account information safe to return to its owner
type AccountData struct {
	AccountID   string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// GetAccountResponse represents account lookup output
type GetAccountResponse struct {
	Account AccountData
}

// GetAccount retrieves the account behind a verified session.
func (s *AuthService) GetAccount(ctx context.Context, req GetAccountRequest) (*GetAccountResponse, error) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, &domain.ValidationError{Message: "invalid account id format", Field: "account_id"}
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &GetAccountResponse{Account: AccountData{
		AccountID:   account.ID.String(),
		DisplayName: account.DisplayName,
		Email:       account.Email,
		CreatedAt:   account.CreatedAt,
	}}, nil
}

// issueOTP generates a fresh challenge, persists it and mails it. The stored
// code survives a delivery failure so a later resend can replace it cleanly.
func (s *AuthService) issueOTP(ctx context.Context, account *domain.Account) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return &domain.InternalError{Message: "failed to generate otp", Err: err}
	}

	expiresAt := time.Now().Add(s.config.OTPExpiry)
	if err := s.accounts.SetPendingOTP(ctx, account.ID, code, expiresAt); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Your verification code is: %s\n\nThe code expires in %d minutes.",
		code,
		int(s.config.OTPExpiry.Minutes()),
	)
	msg := notifier.Message{
		Recipient: account.Email,
		Subject:   "Your login verification code",
		Body:      body,
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		return &domain.InternalError{Message: "failed to deliver otp email", Err: err}
	}

	return nil
}
