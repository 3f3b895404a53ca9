package model

// StockRecord is the canonical stock-level shape. Qty is a whole non-negative
// count: fractional upstream quantities are truncated during mapping and
// negatives clamp to zero. PriceReserve starts equal to Price and is then
// adjusted by the discount and stock-correction rules.
type StockRecord struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	EnterpriseCode string  `gorm:"type:varchar(50);index:idx_stock_enterprise_code;not null" json:"-"`
	Branch         string  `gorm:"type:varchar(50);not null" json:"branch" validate:"required"`
	Code           string  `gorm:"type:varchar(100);index:idx_stock_enterprise_code;not null" json:"code" validate:"required"`
	Price          float64 `gorm:"default:0" json:"price" validate:"gte=0"`
	Qty            int     `gorm:"default:0" json:"qty" validate:"gte=0"`
	PriceReserve   float64 `gorm:"default:0" json:"price_reserve"`
}

func (StockRecord) TableName() string { return "inventory_stock" }
