package model

// BranchMapping relates an upstream store identifier to a canonical branch
// code for one enterprise. Read-only from the pipeline's perspective;
// maintained through the admin panel.
type BranchMapping struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	EnterpriseCode string `gorm:"type:varchar(50);index:idx_branch_mapping_enterprise_store;not null" json:"enterprise_code" validate:"required"`
	StoreID        string `gorm:"type:varchar(100);index:idx_branch_mapping_enterprise_store" json:"store_id"`
	Branch         string `gorm:"type:varchar(50);not null" json:"branch" validate:"required"`
	TelegramID     string `gorm:"type:varchar(50)" json:"telegram_id"` // chat bound to this branch for order alerts
}

func (BranchMapping) TableName() string { return "branch_mappings" }
