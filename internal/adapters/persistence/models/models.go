package models

import (
	"time"

	"jangja-school/internal/core/domain"

	"gorm.io/gorm"
)

// Account represents accounts table
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100" json:"name"`
	Email        string    `gorm:"size:100" json:"email"`
	Role         string    `gorm:"size:20;default:'teacher'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// ToDomain converts the row to a domain account
func (a *Account) ToDomain() *domain.Account {
	return &domain.Account{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Name:         a.Name,
		Email:        a.Email,
		Role:         domain.Role(a.Role),
	}
}

// AccountFromDomain converts a domain account to a row
func AccountFromDomain(a domain.Account) *Account {
	return &Account{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Name:         a.Name,
		Email:        a.Email,
		Role:         string(a.Role),
	}
}

// AutoMigrate creates or updates the tables owned by this service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{})
}
