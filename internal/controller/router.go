package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/insurai/authcore/internal/middleware"
	"github.com/insurai/authcore/internal/token"
)

// RouterConfig tunes the HTTP surface.
type RouterConfig struct {
	// OTPRateLimitPerMinute throttles the OTP-issuing endpoints per client
	// IP. Zero disables throttling, which matches the upstream contract.
	OTPRateLimitPerMinute int
}

// NewRouter assembles the middleware chain and the endpoint table.
func NewRouter(ac *AuthController, issuer *token.Issuer, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)

	router.POST("/register", ac.Register)
	router.POST("/verify-otp", ac.VerifyOTP)
	if cfg.OTPRateLimitPerMinute > 0 {
		limit := middleware.RateLimit(cfg.OTPRateLimitPerMinute)
		router.POST("/login", limit, ac.Login)
		router.POST("/resend-otp", limit, ac.ResendOTP)
	} else {
		router.POST("/login", ac.Login)
		router.POST("/resend-otp", ac.ResendOTP)
	}
	router.POST("/forgot-password", ac.ForgotPassword)
	router.POST("/reset-password", ac.ResetPassword)

	gate := middleware.SessionAuth(issuer)
	router.POST("/logout", gate, ac.Logout)
	router.GET("/me", gate, ac.Me)

	return router
}
