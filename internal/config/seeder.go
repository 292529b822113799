package config

import (
	"log"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/password"

	"gorm.io/datatypes"
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

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdmin(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDemoCleaner(); err != nil {
		log.Printf("⚠️ Cleaner seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdmin seeds the default admin account
// This is for development/testing only
// In production, create admins through a secure process
func (s *Seeder) seedAdmin() error {
	var count int64
	s.db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashed, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Username: "admin",
		Password: hashed,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("🌱 Seeded default admin account (username: admin)")
	return nil
}

// seedDemoCleaner seeds one demo cleaner so the cleaner flow can be
// exercised on a fresh dev database
func (s *Seeder) seedDemoCleaner() error {
	var count int64
	s.db.Model(&models.Cleaner{}).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash("cleaner123")
	if err != nil {
		return err
	}

	cleaner := &models.Cleaner{
		EmployeeID:     "EMP001",
		Name:           "Ramu",
		Password:       hashed,
		AssignedBlocks: datatypes.NewJSONSlice([]string{"A", "B"}),
		IsActive:       true,
	}

	if err := s.db.Create(cleaner).Error; err != nil {
		return err
	}

	log.Println("🌱 Seeded demo cleaner (employee_id: EMP001, blocks: A,B)")
	return nil
}
