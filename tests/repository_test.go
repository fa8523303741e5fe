package tests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/insurai/authcore/internal/domain"
)

// RepositoryTestSuite exercises the conditional-update semantics of the
// credential store against a real database.
type RepositoryTestSuite struct {
	BaseTestSuite
}

func TestRepository(t *testing.T) {
	skipIfShort(t)
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) createAccount(email string) *domain.Account {
	account := &domain.Account{
		DisplayName:  "Alice",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	}
	s.Require().NoError(s.AccountRepo.Create(s.Ctx, account))
	return account
}

func (s *RepositoryTestSuite) TestCreateDuplicateEmailConflicts() {
	s.createAccount("alice@x.com")

	err := s.AccountRepo.Create(s.Ctx, &domain.Account{
		DisplayName:  "Alice Again",
		Email:        "alice@x.com",
		PasswordHash: "hash",
	})
	s.Require().Error(err)
	s.True(domain.IsConflict(err))
}

func (s *RepositoryTestSuite) TestConsumePendingOTPIsSingleShot() {
	account := s.createAccount("alice@x.com")
	now := time.Now()

	s.Require().NoError(s.AccountRepo.SetPendingOTP(s.Ctx, account.ID, "042319", now.Add(5*time.Minute)))

	// Wrong code does not consume.
	ok, err := s.AccountRepo.ConsumePendingOTP(s.Ctx, account.ID, "000000", now)
	s.Require().NoError(err)
	s.False(ok)

	// Right code consumes exactly once.
	ok, err = s.AccountRepo.ConsumePendingOTP(s.Ctx, account.ID, "042319", now)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.AccountRepo.ConsumePendingOTP(s.Ctx, account.ID, "042319", now)
	s.Require().NoError(err)
	s.False(ok)

	stored, err := s.AccountRepo.GetByID(s.Ctx, account.ID)
	s.Require().NoError(err)
	s.False(stored.HasPendingOTP())
}

func (s *RepositoryTestSuite) TestConsumePendingOTPRespectsExpiry() {
	account := s.createAccount("alice@x.com")
	now := time.Now()

	s.Require().NoError(s.AccountRepo.SetPendingOTP(s.Ctx, account.ID, "042319", now.Add(-time.Second)))

	ok, err := s.AccountRepo.ConsumePendingOTP(s.Ctx, account.ID, "042319", now)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RepositoryTestSuite) TestConsumePendingResetReplacesHash() {
	account := s.createAccount("alice@x.com")
	now := time.Now()
	token := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	s.Require().NoError(s.AccountRepo.SetPendingReset(s.Ctx, account.ID, token, now.Add(15*time.Minute)))

	ok, err := s.AccountRepo.ConsumePendingReset(s.Ctx, token, "new-hash", now)
	s.Require().NoError(err)
	s.True(ok)

	stored, err := s.AccountRepo.GetByID(s.Ctx, account.ID)
	s.Require().NoError(err)
	s.Equal("new-hash", stored.PasswordHash)
	s.False(stored.HasPendingReset())

	// Second consumption fails.
	ok, err = s.AccountRepo.ConsumePendingReset(s.Ctx, token, "another-hash", now)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RepositoryTestSuite) TestSetPendingOTPReplacesPrevious() {
	account := s.createAccount("alice@x.com")
	now := time.Now()

	s.Require().NoError(s.AccountRepo.SetPendingOTP(s.Ctx, account.ID, "111111", now.Add(5*time.Minute)))
	s.Require().NoError(s.AccountRepo.SetPendingOTP(s.Ctx, account.ID, "222222", now.Add(5*time.Minute)))

	ok, err := s.AccountRepo.ConsumePendingOTP(s.Ctx, account.ID, "111111", now)
	s.Require().NoError(err)
	s.False(ok, "replaced code must be invalid")

	ok, err = s.AccountRepo.ConsumePendingOTP(s.Ctx, account.ID, "222222", now)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *RepositoryTestSuite) TestClearExpired() {
	account := s.createAccount("alice@x.com")
	now := time.Now()

	s.Require().NoError(s.AccountRepo.SetPendingOTP(s.Ctx, account.ID, "042319", now.Add(-time.Minute)))
	s.Require().NoError(s.AccountRepo.SetPendingReset(s.Ctx, account.ID,
		"0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", now.Add(15*time.Minute)))

	s.Require().NoError(s.AccountRepo.ClearExpired(s.Ctx, now))

	stored, err := s.AccountRepo.GetByID(s.Ctx, account.ID)
	s.Require().NoError(err)
	s.False(stored.HasPendingOTP(), "expired otp should be swept")
	s.True(stored.HasPendingReset(), "unexpired reset must survive the sweep")
}
