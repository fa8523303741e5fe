package tests

import (
	"context"
	"fmt"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/insurai/authcore/internal/controller"
	"github.com/insurai/authcore/internal/domain"
	"github.com/insurai/authcore/internal/notifier"
	"github.com/insurai/authcore/internal/repository"
	"github.com/insurai/authcore/internal/service"
	"github.com/insurai/authcore/internal/token"
	"github.com/insurai/authcore/internal/utils"
)

const testJWTSecret = "test-secret-key-at-least-32-characters"

var (
	otpBodyRe   = regexp.MustCompile(`code is: (\d{6})`)
	resetLinkRe = regexp.MustCompile(`token=([0-9a-f]{64})`)
)

// BaseTestSuite provides a PostgreSQL container, the fully wired service and
// an HTTP test server for end-to-end flows.
type BaseTestSuite struct {
	suite.Suite
	Container   testcontainers.Container
	DB          *gorm.DB
	Ctx         context.Context
	Server      *httptest.Server
	AccountRepo *repository.AccountRepository
	AuthService *service.AuthService
	Notifier    *notifier.MockNotifier
	Issuer      *token.Issuer
}

// SetupSuite initializes the test environment (runs once before all tests)
func (s *BaseTestSuite) SetupSuite() {
	ctx := context.Background()
	s.Ctx = ctx

	// Start PostgreSQL container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "test_auth",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err, "Failed to start PostgreSQL container")
	s.Container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err, "Failed to get container host")

	port, err := container.MappedPort(ctx, "5432")
	s.Require().NoError(err, "Failed to get container port")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=testuser password=testpass dbname=test_auth sslmode=disable",
		host, port.Port(),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	s.Require().NoError(err, "Failed to connect to database")
	s.DB = db

	// Run migrations
	s.Require().NoError(domain.AutoMigrate(db), "Failed to run migrations")

	// Wire the service and HTTP server
	s.AccountRepo = repository.NewAccountRepository(db)
	s.Notifier = notifier.NewMockNotifier()
	s.Issuer = token.NewIssuer(testJWTSecret, time.Hour)

	s.AuthService = service.NewAuthService(
		s.AccountRepo,
		utils.NewPasswordHasher(),
		utils.NewValidator(),
		s.Issuer,
		s.Notifier,
		service.AuthServiceConfig{
			OTPExpiry:    5 * time.Minute,
			ResetExpiry:  15 * time.Minute,
			ResetURLBase: "https://app.example.com/reset-password",
		},
	)

	gin.SetMode(gin.TestMode)
	router := controller.NewRouter(
		controller.NewAuthController(s.AuthService),
		s.Issuer,
		controller.RouterConfig{},
	)
	s.Server = httptest.NewServer(router)
}

// TearDownSuite cleans up the test environment
func (s *BaseTestSuite) TearDownSuite() {
	if s.Server != nil {
		s.Server.Close()
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if s.Container != nil {
		_ = s.Container.Terminate(s.Ctx)
	}
}

// SetupTest truncates state between tests
func (s *BaseTestSuite) SetupTest() {
	s.Require().NoError(s.DB.Exec("TRUNCATE TABLE accounts").Error)
	s.Notifier.Clear()
}

// LastOTP extracts the most recently mailed OTP code
func (s *BaseTestSuite) LastOTP() string {
	msg, ok := s.Notifier.Last()
	s.Require().True(ok, "expected a notification to have been sent")
	m := otpBodyRe.FindStringSubmatch(msg.Body)
	s.Require().Len(m, 2, "otp not found in notification body: %q", msg.Body)
	return m[1]
}

// LastResetToken extracts the most recently mailed reset token
func (s *BaseTestSuite) LastResetToken() string {
	msg, ok := s.Notifier.Last()
	s.Require().True(ok, "expected a notification to have been sent")
	m := resetLinkRe.FindStringSubmatch(msg.Body)
	s.Require().Len(m, 2, "reset token not found in notification body: %q", msg.Body)
	return m[1]
}

func skipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed e2e suite in short mode")
	}
}
