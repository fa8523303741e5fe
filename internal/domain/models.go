package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents the accounts table. It is the only persistent entity of
// the credential subsystem: identity, password hash and the two independent
// pending-secret pairs (login OTP and password reset) live on the same row.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName  string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`

	// Pending login OTP challenge. Both columns are set together and cleared
	// together; NULL means no challenge outstanding.
	OTPCode      *string    `gorm:"type:varchar(6)"`
	OTPExpiresAt *time.Time `gorm:"type:timestamp with time zone"`

	// Pending password reset. Same pairing rule as the OTP columns.
	ResetToken     *string    `gorm:"type:varchar(64);uniqueIndex"`
	ResetExpiresAt *time.Time `gorm:"type:timestamp with time zone"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate assigns the account ID if the caller did not.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// HasPendingOTP reports whether a login challenge is outstanding, regardless
// of expiry. Expiry is checked at consumption time.
func (a *Account) HasPendingOTP() bool {
	return a.OTPCode != nil && a.OTPExpiresAt != nil
}

// HasPendingReset reports whether a password reset is outstanding.
func (a *Account) HasPendingReset() bool {
	return a.ResetToken != nil && a.ResetExpiresAt != nil
}

// AutoMigrate runs auto migrations for the credential schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{})
}
