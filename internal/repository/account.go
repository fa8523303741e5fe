package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insurai/authcore/internal/domain"
)

// AccountRepository handles account-related database operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &domain.ConflictError{Message: "email already registered"}
		}
		return &domain.InternalError{Message: "failed to create account", Err: err}
	}
	return nil
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Message: "account not found"}
		}
		return nil, &domain.InternalError{Message: "failed to get account", Err: err}
	}

	return &account, nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).
		Where("id = ?", accountID).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Message: "account not found"}
		}
		return nil, &domain.InternalError{Message: "failed to get account", Err: err}
	}

	return &account, nil
}

// ExistsEmail checks whether an account with the given email exists
func (r *AccountRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("email = ?", email).
		Count(&count).Error

	if err != nil {
		return false, &domain.InternalError{Message: "failed to check email", Err: err}
	}

	return count > 0, nil
}

// SetPendingOTP stores a fresh login OTP, replacing any outstanding one.
func (r *AccountRepository) SetPendingOTP(ctx context.Context, accountID uuid.UUID, code string, expiresAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"otp_code":       code,
			"otp_expires_at": expiresAt,
		}).Error

	if err != nil {
		return &domain.InternalError{Message: "failed to store otp", Err: err}
	}
	return nil
}

// ConsumePendingOTP atomically clears the pending OTP if the submitted code
// matches the stored one and it has not expired. Returns false when nothing
// matched, which collapses "no challenge", "wrong code" and "expired" into a
// single outcome.
func (r *AccountRepository) ConsumePendingOTP(ctx context.Context, accountID uuid.UUID, code string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("id = ? AND otp_code = ? AND otp_expires_at >= ?", accountID, code, now).
		Updates(map[string]interface{}{
			"otp_code":       nil,
			"otp_expires_at": nil,
		})

	if res.Error != nil {
		return false, &domain.InternalError{Message: "failed to consume otp", Err: res.Error}
	}

	return res.RowsAffected > 0, nil
}

// SetPendingReset stores a fresh reset token, replacing any outstanding one.
func (r *AccountRepository) SetPendingReset(ctx context.Context, accountID uuid.UUID, token string, expiresAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"reset_token":      token,
			"reset_expires_at": expiresAt,
		}).Error

	if err != nil {
		return &domain.InternalError{Message: "failed to store reset token", Err: err}
	}
	return nil
}

// ConsumePendingReset atomically replaces the password hash and clears the
// pending reset for the account holding a matching, unexpired token. Returns
// false when no such account exists.
func (r *AccountRepository) ConsumePendingReset(ctx context.Context, token, newPasswordHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("reset_token = ? AND reset_expires_at >= ?", token, now).
		Updates(map[string]interface{}{
			"password_hash":    newPasswordHash,
			"reset_token":      nil,
			"reset_expires_at": nil,
		})

	if res.Error != nil {
		return false, &domain.InternalError{Message: "failed to consume reset token", Err: res.Error}
	}

	return res.RowsAffected > 0, nil
}

// ClearExpired nulls out expired pending OTP and reset values. Purely storage
// hygiene: expiry is also enforced at consumption time.
func (r *AccountRepository) ClearExpired(ctx context.Context, now time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("otp_expires_at < ?", now).
		Updates(map[string]interface{}{
			"otp_code":       nil,
			"otp_expires_at": nil,
		}).Error
	if err != nil {
		return &domain.InternalError{Message: "failed to clear expired otps", Err: err}
	}

	err = r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("reset_expires_at < ?", now).
		Updates(map[string]interface{}{
			"reset_token":      nil,
			"reset_expires_at": nil,
		}).Error
	if err != nil {
		return &domain.InternalError{Message: "failed to clear expired reset tokens", Err: err}
	}

	return nil
}
