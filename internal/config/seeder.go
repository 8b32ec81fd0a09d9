package config

import (
	"log"

	"jangja-school/internal/adapters/persistence/models"
	"jangja-school/internal/core/domain"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run migrates the schema and seeds the account table
func (s *Seeder) Run(accounts []domain.Account) error {
	log.Println("🌱 Running database seeders...")

	if err := models.AutoMigrate(s.db); err != nil {
		return err
	}
	if err := s.seedAccounts(accounts); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAccounts inserts the configured accounts when the table is empty.
// Existing rows are never touched.
func (s *Seeder) seedAccounts(accounts []domain.Account) error {
	var count int64
	if err := s.db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("⚠️ Skipping account seed: %d accounts already present", count)
		return nil
	}

	rows := make([]*models.Account, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, models.AccountFromDomain(a))
	}
	if len(rows) == 0 {
		return nil
	}

	if err := s.db.Create(rows).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d accounts", len(rows))
	return nil
}
