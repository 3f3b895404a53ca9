package repository

import (
	"github.com/nazdrin/inventory-sub001/internal/model"

	"gorm.io/gorm"
)

type StockRepository interface {
	ReplaceAll(tx *gorm.DB, enterpriseCode string, batch []model.StockRecord) error
	FindByEnterprise(code string) ([]model.StockRecord, error)
	CountByEnterprise(code string) (int64, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) ReplaceAll(tx *gorm.DB, enterpriseCode string, batch []model.StockRecord) error {
	if err := tx.Where("enterprise_code = ?", enterpriseCode).Delete(&model.StockRecord{}).Error; err != nil {
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

func (r *stockRepo) FindByEnterprise(code string) ([]model.StockRecord, error) {
	var records []model.StockRecord
	err := r.db.Find(&records, "enterprise_code = ?", code).Error
	return records, err
}

func (r *stockRepo) CountByEnterprise(code string) (int64, error) {
	var count int64
	err := r.db.Model(&model.StockRecord{}).Where("enterprise_code = ?", code).Count(&count).Error
	return count, err
}
