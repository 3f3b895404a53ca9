package repository

import (
	"time"

	"github.com/nazdrin/inventory-sub001/internal/model"

	"gorm.io/gorm"
)

type EnterpriseRepository interface {
	FindAll() ([]model.EnterpriseSettings, error)
	FindByCode(code string) (*model.EnterpriseSettings, error)
	StampUpload(tx *gorm.DB, code string, kind model.RecordKind, at time.Time) error
}

type enterpriseRepo struct {
	db *gorm.DB
}

func NewEnterpriseRepo(db *gorm.DB) EnterpriseRepository {
	return &enterpriseRepo{db}
}

func (r *enterpriseRepo) FindAll() ([]model.EnterpriseSettings, error) {
	var enterprises []model.EnterpriseSettings
	err := r.db.Find(&enterprises).Error
	return enterprises, err
}

func (r *enterpriseRepo) FindByCode(code string) (*model.EnterpriseSettings, error) {
	var enterprise model.EnterpriseSettings
	err := r.db.First(&enterprise, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &enterprise, nil
}

// StampUpload advances last_catalog_upload / last_stock_upload. It takes the
// caller's tx so the stamp commits or rolls back together with the batch it
// describes.
func (r *enterpriseRepo) StampUpload(tx *gorm.DB, code string, kind model.RecordKind, at time.Time) error {
	column := "last_stock_upload"
	if kind == model.KindCatalog {
		column = "last_catalog_upload"
	}
	result := tx.Model(&model.EnterpriseSettings{}).
		Where("code = ?", code).
		Update(column, at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
