package model

// CatalogRecord is the canonical product-card shape every source format is
// normalized into. (enterprise_code, code) is indexed but deliberately not
// unique: duplicate codes within one batch are kept and the last insert wins.
type CatalogRecord struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	EnterpriseCode string  `gorm:"type:varchar(50);index:idx_catalog_enterprise_code;not null" json:"-"`
	Code           string  `gorm:"type:varchar(100);index:idx_catalog_enterprise_code;not null" json:"code" validate:"required"`
	Name           string  `gorm:"type:varchar(500)" json:"name"`
	Producer       string  `gorm:"type:varchar(255)" json:"producer"`
	Barcode        string  `gorm:"type:varchar(100)" json:"barcode"`
	VAT            float64 `gorm:"default:0" json:"vat"`
}

func (CatalogRecord) TableName() string { return "inventory_data" }
