package model

import "time"

// DataFormat tags which converter an enterprise's feed goes through.
const (
	FormatJSONFeed   = "json_feed"
	FormatXMLFeed    = "xml_feed"
	FormatExcelDrive = "excel_drive"
	FormatCSVFTP     = "csv_ftp"
	FormatRESTAPI    = "rest_api"
)

// RecordKind selects which canonical table a pipeline run targets.
type RecordKind string

const (
	KindCatalog RecordKind = "catalog"
	KindStock   RecordKind = "stock"
)

func (k RecordKind) Valid() bool {
	return k == KindCatalog || k == KindStock
}

// EnterpriseSettings is one tenant's feed configuration. At most one row per
// enterprise code; the pipeline only ever writes the last_*_upload stamps.
type EnterpriseSettings struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"enterprise_code" validate:"required"`
	Name string `gorm:"type:varchar(255)" json:"name"`

	// Feed source
	Token      string `gorm:"type:text" json:"token"` // feed URL or API credential, format dependent
	DataFormat string `gorm:"type:varchar(30)" json:"data_format" validate:"data_format"`

	// Polling cadence in minutes, per record kind. <= 0 disables that kind.
	CatalogUploadFrequency int `gorm:"default:0" json:"catalog_upload_frequency"`
	StockUploadFrequency   int `gorm:"default:0" json:"stock_upload_frequency"`

	LastCatalogUpload *time.Time `json:"last_catalog_upload"`
	LastStockUpload   *time.Time `json:"last_stock_upload"`

	// Business rules
	DiscountRate    float64 `gorm:"default:0" json:"discount_rate" validate:"gte=0,lte=100"`
	StockCorrection bool    `gorm:"default:false" json:"stock_correction"`
	BranchID        string  `gorm:"type:varchar(50)" json:"branch_id"` // fallback branch for sources without a warehouse breakdown
	DefaultVAT      float64 `gorm:"default:20" json:"default_vat"`

	// Orders API used by the stock-correction step
	OrderEndpoint string `gorm:"type:text" json:"order_endpoint"`
	OrderLogin    string `gorm:"type:varchar(100)" json:"order_login"`
	OrderPassword string `gorm:"type:varchar(100)" json:"order_password"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EnterpriseSettings) TableName() string { return "enterprise_settings" }

// LastUpload returns the stamp for the given kind.
func (e *EnterpriseSettings) LastUpload(kind RecordKind) *time.Time {
	if kind == KindCatalog {
		return e.LastCatalogUpload
	}
	return e.LastStockUpload
}

// UploadFrequency returns the cadence in minutes for the given kind.
func (e *EnterpriseSettings) UploadFrequency(kind RecordKind) int {
	if kind == KindCatalog {
		return e.CatalogUploadFrequency
	}
	return e.StockUploadFrequency
}
