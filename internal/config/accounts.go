package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"jangja-school/internal/core/domain"
	"jangja-school/internal/pkg/password"
)

// accountEntry is one record of the accounts file
type accountEntry struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// devAccount is a built-in development login
type devAccount struct {
	account  domain.Account
	password string
}

// devAccounts are used only in dev mode when no ACCOUNTS_FILE is given
var devAccounts = []devAccount{
	{
		account: domain.Account{
			ID:       1,
			Username: "teacher1",
			Name:     "김선생",
			Email:    "teacher1@jangjachristian.edu",
			Role:     domain.RoleTeacher,
		},
		password: "password123",
	},
	{
		account: domain.Account{
			ID:       2,
			Username: "admin",
			Name:     "관리자",
			Email:    "admin@jangjachristian.edu",
			Role:     domain.RoleAdmin,
		},
		password: "admin123",
	},
}

// LoadAccounts returns the account list the credential store is built from
func LoadAccounts(cfg *Config) ([]domain.Account, error) {
	if cfg.AccountsFile != "" {
		return ReadAccountsFile(cfg.AccountsFile)
	}
	if cfg.IsProd() {
		return nil, errors.New("ACCOUNTS_FILE is required in prod mode")
	}
	return DevAccounts(password.DefaultCost)
}

// DevAccounts hashes the built-in development logins
func DevAccounts(cost int) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(devAccounts))
	for _, d := range devAccounts {
		hash, err := password.HashWithCost(d.password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash dev account %s: %w", d.account.Username, err)
		}
		a := d.account
		a.PasswordHash = hash
		accounts = append(accounts, a)
	}

	log.Println("⚠️ Using built-in development accounts:")
	for _, d := range devAccounts {
		log.Printf("   - %s / %s", d.account.Username, d.password)
	}
	return accounts, nil
}

// ReadAccountsFile parses a JSON array of accounts with bcrypt password hashes
func ReadAccountsFile(path string) ([]domain.Account, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var entries []accountEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	accounts := make([]domain.Account, 0, len(entries))
	for i, e := range entries {
		role := domain.Role(e.Role)
		switch {
		case e.Username == "":
			return nil, fmt.Errorf("account #%d: username is required", i+1)
		case seen[e.Username]:
			return nil, fmt.Errorf("account %s: duplicate username", e.Username)
		case !password.IsHash(e.PasswordHash):
			return nil, fmt.Errorf("account %s: passwordHash is not a bcrypt hash", e.Username)
		case !role.Valid():
			return nil, fmt.Errorf("account %s: invalid role %q", e.Username, e.Role)
		}
		seen[e.Username] = true

		id := e.ID
		if id == 0 {
			id = uint(i + 1)
		}
		accounts = append(accounts, domain.Account{
			ID:           id,
			Username:     e.Username,
			PasswordHash: e.PasswordHash,
			Name:         e.Name,
			Email:        e.Email,
			Role:         role,
		})
	}

	log.Printf("✅ Loaded %d accounts from %s", len(accounts), path)
	return accounts, nil
}
