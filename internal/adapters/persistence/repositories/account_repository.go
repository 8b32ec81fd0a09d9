package repositories

import (
	"context"
	"errors"

	"jangja-school/internal/adapters/persistence/models"
	"jangja-school/internal/core/domain"

	"gorm.io/gorm"
)

// accountRepository implements AccountRepository over a fixed in-memory list
type accountRepository struct {
	accounts []domain.Account
}

// NewAccountRepository creates a credential store from a static account list
func NewAccountRepository(accounts []domain.Account) AccountRepository {
	list := make([]domain.Account, len(accounts))
	copy(list, accounts)
	return &accountRepository{accounts: list}
}

// FindByUsername scans the list for username
func (r *accountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for i := range r.accounts {
		if r.accounts[i].Username == username {
			a := r.accounts[i]
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// Count returns the number of accounts
func (r *accountRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.accounts)), nil
}

// gormAccountRepository implements AccountRepository over the accounts table
type gormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a MySQL-backed credential store
func NewGormAccountRepository(db *gorm.DB) AccountRepository {
	return &gormAccountRepository{db: db}
}

// FindByUsername gets an account by username
func (r *gormAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Count returns the number of rows in the accounts table
func (r *gormAccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error
	return count, err
}
