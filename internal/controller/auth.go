package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/insurai/authcore/internal/domain"
	"github.com/insurai/authcore/internal/middleware"
	"github.com/insurai/authcore/internal/service"
)

// AuthController exposes the auth service over HTTP
type AuthController struct {
	authService service.IAuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{authService: authService}
}

type registerRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resendOTPRequest struct {
	Email string `json:"email"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

// Register handles POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&domain.ValidationError{Message: "invalid request body"})
		return
	}

	resp, err := ac.authService.Register(c.Request.Context(), service.RegisterRequest{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": resp.Message})
}

// Login handles POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&domain.ValidationError{Message: "invalid request body"})
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resp.Message})
}

// VerifyOTP handles POST /verify-otp
func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&domain.ValidationError{Message: "invalid request body"})
		return
	}

	resp, err := ac.authService.VerifyOTP(c.Request.Context(), service.VerifyOTPRequest{
		Email: req.Email,
		Code:  req.OTP,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      resp.Message,
		"sessionToken": resp.SessionToken,
	})
}

// ResendOTP handles POST /resend-otp
func (ac *AuthController) ResendOTP(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&domain.ValidationError{Message: "invalid request body"})
		return
	}

	resp, err := ac.authService.ResendOTP(c.Request.Context(), service.ResendOTPRequest{
		Email: req.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resp.Message})
}

// Logout handles POST /logout
func (ac *AuthController) Logout(c *gin.Context) {
	var accountID string
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		accountID = claims.AccountID
	}

	resp, err := ac.authService.Logout(c.Request.Context(), service.LogoutRequest{
		AccountID: accountID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resp.Message})
}

// ForgotPassword handles POST /forgot-password
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&domain.ValidationError{Message: "invalid request body"})
		return
	}

	resp, err := ac.authService.ForgotPassword(c.Request.Context(), service.ForgotPasswordRequest{
		Email: req.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resp.Message})
}

// ResetPassword handles POST /reset-password
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&domain.ValidationError{Message: "invalid request body"})
		return
	}

	resp, err := ac.authService.ResetPassword(c.Request.Context(), service.ResetPasswordRequest{
		Token:       req.ResetToken,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resp.Message})
}

// Me handles GET /me
func (ac *AuthController) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.Error(&domain.UnauthorizedError{Message: "invalid or expired session"})
		return
	}

	resp, err := ac.authService.GetAccount(c.Request.Context(), service.GetAccountRequest{
		AccountID: claims.AccountID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          resp.Account.AccountID,
		"displayName": resp.Account.DisplayName,
		"email":       resp.Account.Email,
	})
}
