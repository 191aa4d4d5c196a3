package accounts

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maximumcrm/salon-scheduler/internal/models"
)

// Seed creates the built-in roles and, if no account holds the admin
// role yet, a bootstrap administrator. A failed count must not read as
// "no admin", so every step is checked.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	for _, name := range []string{RoleAdmin, RoleManager} {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Role{Name: name}).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	var count int64
	if err := db.Model(&models.Account{}).
		Joins("JOIN account_roles ar ON ar.account_id = accounts.id").
		Joins("JOIN roles r ON r.id = ar.role_id AND r.name = ?", RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("count admin accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	svc := NewService(db)
	if _, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		Email:    adminEmail,
		FullName: "Администратор",
		Password: adminPassword,
		Roles:    []string{RoleAdmin},
	}); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	return nil
}
