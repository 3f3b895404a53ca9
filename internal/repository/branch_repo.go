package repository

import (
	"github.com/nazdrin/inventory-sub001/internal/model"

	"gorm.io/gorm"
)

type BranchMappingRepository interface {
	FindByEnterprise(code string) ([]model.BranchMapping, error)
}

type branchMappingRepo struct {
	db *gorm.DB
}

func NewBranchMappingRepo(db *gorm.DB) BranchMappingRepository {
	return &branchMappingRepo{db}
}

func (r *branchMappingRepo) FindByEnterprise(code string) ([]model.BranchMapping, error) {
	var mappings []model.BranchMapping
	err := r.db.Find(&mappings, "enterprise_code = ?", code).Error
	return mappings, err
}
