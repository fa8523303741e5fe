package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/insurai/authcore/internal/domain"
)

// MockAccountRepository is a mock implementation of IAccountRepository
type MockAccountRepository struct {
	CreateFunc              func(ctx context.Context, account *domain.Account) error
	GetByEmailFunc          func(ctx context.Context, email string) (*domain.Account, error)
	GetByIDFunc             func(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
	ExistsEmailFunc         func(ctx context.Context, email string) (bool, error)
	SetPendingOTPFunc       func(ctx context.Context, accountID uuid.UUID, code string, expiresAt time.Time) error
	ConsumePendingOTPFunc   func(ctx context.Context, accountID uuid.UUID, code string, now time.Time) (bool, error)
	SetPendingResetFunc     func(ctx context.Context, accountID uuid.UUID, token string, expiresAt time.Time) error
	ConsumePendingResetFunc func(ctx context.Context, token, newPasswordHash string, now time.Time) (bool, error)
	ClearExpiredFunc        func(ctx context.Context, now time.Time) error
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, &domain.NotFoundError{Message: "account not found"}
}

func (m *MockAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, accountID)
	}
	return nil, &domain.NotFoundError{Message: "account not found"}
}

func (m *MockAccountRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsEmailFunc != nil {
		return m.ExistsEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockAccountRepository) SetPendingOTP(ctx context.Context, accountID uuid.UUID, code string, expiresAt time.Time) error {
	if m.SetPendingOTPFunc != nil {
		return m.SetPendingOTPFunc(ctx, accountID, code, expiresAt)
	}
	return nil
}

func (m *MockAccountRepository) ConsumePendingOTP(ctx context.Context, accountID uuid.UUID, code string, now time.Time) (bool, error) {
	if m.ConsumePendingOTPFunc != nil {
		return m.ConsumePendingOTPFunc(ctx, accountID, code, now)
	}
	return false, nil
}

func (m *MockAccountRepository) SetPendingReset(ctx context.Context, accountID uuid.UUID, token string, expiresAt time.Time) error {
	if m.SetPendingResetFunc != nil {
		return m.SetPendingResetFunc(ctx, accountID, token, expiresAt)
	}
	return nil
}

func (m *MockAccountRepository) ConsumePendingReset(ctx context.Context, token, newPasswordHash string, now time.Time) (bool, error) {
	if m.ConsumePendingResetFunc != nil {
		return m.ConsumePendingResetFunc(ctx, token, newPasswordHash, now)
	}
	return false, nil
}

func (m *MockAccountRepository) ClearExpired(ctx context.Context, now time.Time) error {
	if m.ClearExpiredFunc != nil {
		return m.ClearExpiredFunc(ctx, now)
	}
	return nil
}
