package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/maximumcrm/salon-scheduler/internal/config"
	"github.com/maximumcrm/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Role{},
		&models.Account{},
		&models.Client{},
		&models.Employee{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Range-exclusion constraint for the no-double-booking invariant.
	// With an empty slot the FOR UPDATE select locks no rows, so two
	// concurrent inserts for overlapping free slots only collide here,
	// at commit, with 23P01. The server must not come up without it.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_employee_overlap
            EXCLUDE USING gist (
                employee_id WITH =,
                tstzrange(start_at_utc, end_at_utc) WITH &&
            );
        EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
        END $$
    `).Error; err != nil {
		log.Fatalf("failed to create overlap exclusion constraint: %v", err)
	}

	return db
}
