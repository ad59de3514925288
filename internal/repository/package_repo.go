package repository

import (
	"gorm.io/gorm"

	"agencydesk/internal/models"
)

// PackageRepository handles website package database operations.
type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// FindAll returns packages, optionally only active ones.
func (r *PackageRepository) FindAll(activeOnly bool) ([]models.Package, error) {
	var packages []models.Package
	db := r.db.Order("price ASC")
	if activeOnly {
		db = db.Where("active = ?", true)
	}
	err := db.Find(&packages).Error
	return packages, err
}

// FindByCode returns a package by its code.
func (r *PackageRepository) FindByCode(code string) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.Where("code = ?", code).First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Create creates a new package.
func (r *PackageRepository) Create(pkg *models.Package) error {
	return r.db.Create(pkg).Error
}

// UpdateByCode updates a package by code.
func (r *PackageRepository) UpdateByCode(code string, updates map[string]interface{}) error {
	return r.db.Model(&models.Package{}).Where("code = ?", code).Updates(updates).Error
}

// DeleteByCode removes a package by code.
func (r *PackageRepository) DeleteByCode(code string) error {
	return r.db.Where("code = ?", code).Delete(&models.Package{}).Error
}

// Count returns the number of packages.
func (r *PackageRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Package{}).Count(&count).Error
	return count, err
}
