package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"agencydesk/internal/models"
)

// MigrateAndSeed ensures required tables exist and inserts the default
// website packages on first run.
func MigrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	if err := seedDefaults(db); err != nil {
		return fmt.Errorf("seed defaults failed: %w", err)
	}
	return nil
}

func allModels() []interface{} {
	return []interface{}{
		&models.Order{},
		&models.Package{},
	}
}

func seedDefaults(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return ensureDefaultPackages(tx)
	})
}

func ensureDefaultPackages(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.Package{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Package{
		{
			Code:        "starter",
			Name:        "Starter Website",
			Description: "Single-page site for small businesses getting online.",
			Price:       15000,
			Currency:    "LKR",
			Features:    "1 page\nMobile responsive\nContact form\n1 revision round",
			Active:      true,
		},
		{
			Code:        "business",
			Name:        "Business Website",
			Description: "Multi-page site with CMS for growing companies.",
			Price:       45000,
			Currency:    "LKR",
			Features:    "Up to 8 pages\nCMS\nBasic SEO\nGoogle Analytics\n3 revision rounds",
			Active:      true,
		},
		{
			Code:        "ecommerce",
			Name:        "E-Commerce Website",
			Description: "Online store with product catalog and payment integration.",
			Price:       90000,
			Currency:    "LKR",
			Features:    "Product catalog\nShopping cart\nPayment gateway\nOrder management\n5 revision rounds",
			Active:      true,
		},
	}

	for i := range defaults {
		if err := tx.Create(&defaults[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
