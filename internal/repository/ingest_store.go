package repository

import (
	"time"

	"github.com/nazdrin/inventory-sub001/internal/model"

	"gorm.io/gorm"
)

// IngestStore is the pipeline's whole write surface: replace one
// enterprise's batch and stamp the upload time, atomically. Nothing else in
// the service writes canonical records.
type IngestStore interface {
	ReplaceCatalog(enterpriseCode string, batch []model.CatalogRecord, at time.Time) error
	ReplaceStock(enterpriseCode string, batch []model.StockRecord, at time.Time) error
}

type ingestStore struct {
	db          *gorm.DB
	enterprises EnterpriseRepository
	catalog     CatalogRepository
	stock       StockRepository
}

func NewIngestStore(db *gorm.DB, enterprises EnterpriseRepository, catalog CatalogRepository, stock StockRepository) IngestStore {
	return &ingestStore{
		db:          db,
		enterprises: enterprises,
		catalog:     catalog,
		stock:       stock,
	}
}

// ReplaceCatalog runs delete + insert + stamp inside one transaction. An
// insert failure rolls the delete back too, so the previous batch survives a
// failed run intact and the stamp is never observed ahead of its data.
func (s *ingestStore) ReplaceCatalog(enterpriseCode string, batch []model.CatalogRecord, at time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.catalog.ReplaceAll(tx, enterpriseCode, batch); err != nil {
			return err
		}
		return s.enterprises.StampUpload(tx, enterpriseCode, model.KindCatalog, at)
	})
}

func (s *ingestStore) ReplaceStock(enterpriseCode string, batch []model.StockRecord, at time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.stock.ReplaceAll(tx, enterpriseCode, batch); err != nil {
			return err
		}
		return s.enterprises.StampUpload(tx, enterpriseCode, model.KindStock, at)
	})
}
