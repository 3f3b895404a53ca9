package repository

import (
	"github.com/nazdrin/inventory-sub001/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	ReplaceAll(tx *gorm.DB, enterpriseCode string, batch []model.CatalogRecord) error
	FindByEnterprise(code string) ([]model.CatalogRecord, error)
	CountByEnterprise(code string) (int64, error)
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db}
}

// ReplaceAll deletes every row for the enterprise and inserts the new batch
// in order. Runs on the caller's tx; the insert order makes duplicate codes
// last-write-wins.
func (r *catalogRepo) ReplaceAll(tx *gorm.DB, enterpriseCode string, batch []model.CatalogRecord) error {
	if err := tx.Where("enterprise_code = ?", enterpriseCode).Delete(&model.CatalogRecord{}).Error; err != nil {
		return err
	}
	for i := range batch {
		batch[i].ID = 0
		batch[i].EnterpriseCode = enterpriseCode
	}
	if len(batch) == 0 {
		return nil
	}
	return tx.CreateInBatches(batch, 500).Error
}

func (r *catalogRepo) FindByEnterprise(code string) ([]model.CatalogRecord, error) {
	var records []model.CatalogRecord
	err := r.db.Find(&records, "enterprise_code = ?", code).Error
	return records, err
}

func (r *catalogRepo) CountByEnterprise(code string) (int64, error) {
	var count int64
	err := r.db.Model(&model.CatalogRecord{}).Where("enterprise_code = ?", code).Count(&count).Error
	return count, err
}
