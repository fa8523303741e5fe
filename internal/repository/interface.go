package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/insurai/authcore/internal/domain"
)

// IAccountRepository defines the interface for credential store operations.
//
// Pending OTP and reset values are consumed through conditional updates that
// compare the stored value and its expiry inside a single statement, so two
// concurrent verifications against the same account can never both succeed.
type IAccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)

	SetPendingOTP(ctx context.Context, accountID uuid.UUID, code string, expiresAt time.Time) error
	ConsumePendingOTP(ctx context.Context, accountID uuid.UUID, code string, now time.Time) (bool, error)

	SetPendingReset(ctx context.Context, accountID uuid.UUID, token string, expiresAt time.Time) error
	ConsumePendingReset(ctx context.Context, token, newPasswordHash string, now time.Time) (bool, error)

	ClearExpired(ctx context.Context, now time.Time) error
}

// Compile-time check to ensure the struct implements its interface
var _ IAccountRepository = (*AccountRepository)(nil)
