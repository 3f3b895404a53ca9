package service

import (
	"errors"
	"log"
	"math"

	"github.com/nazdrin/inventory-sub001/internal/mapper"
	"github.com/nazdrin/inventory-sub001/internal/model"
	"github.com/nazdrin/inventory-sub001/internal/repository"
)

var ErrNoFallbackBranch = errors.New("source has no warehouse breakdown and enterprise has no fallback branch")

// StockCorrector reconciles a stock batch against an external system of
// record (open orders). Collaborator contract only; the HTTP implementation
// lives in corrector.go.
type StockCorrector interface {
	Correct(settings *model.EnterpriseSettings, records []model.StockRecord) ([]model.StockRecord, error)
}

// RuleEngine applies the tenant-level transforms to a mapped stock batch.
// Fixed order, driven by the pipeline: branch resolution, then discount,
// then stock correction. Correction has to see the discounted baseline.
type RuleEngine struct {
	branches  repository.BranchMappingRepository
	corrector StockCorrector
}

func NewRuleEngine(branches repository.BranchMappingRepository, corrector StockCorrector) *RuleEngine {
	return &RuleEngine{branches: branches, corrector: corrector}
}

// ResolveBranches turns mapped rows into canonical records with a branch on
// every one. Rows carrying an upstream store id are resolved through the
// enterprise's branch mappings; unresolvable stores are dropped with a
// warning. Rows with neither branch nor store id get the enterprise's
// fallback branch; with no fallback configured the whole batch is abandoned.
func (e *RuleEngine) ResolveBranches(settings *model.EnterpriseSettings, rows []mapper.StockRow) ([]model.StockRecord, error) {
	mappings, err := e.branches.FindByEnterprise(settings.Code)
	if err != nil {
		return nil, err
	}
	byStore := make(map[string]string, len(mappings))
	for _, m := range mappings {
		if m.StoreID != "" {
			byStore[m.StoreID] = m.Branch
		}
	}

	records := make([]model.StockRecord, 0, len(rows))
	for _, row := range rows {
		record := row.Record
		switch {
		case record.Branch != "":
			// source already speaks canonical branch codes
		case row.StoreID != "":
			branch, ok := byStore[row.StoreID]
			if !ok {
				log.Printf("rules: enterprise %s: no branch mapping for store %q, dropping code %s",
					settings.Code, row.StoreID, record.Code)
				continue
			}
			record.Branch = branch
		default:
			if settings.BranchID == "" {
				return nil, ErrNoFallbackBranch
			}
			record.Branch = settings.BranchID
		}
		records = append(records, record)
	}
	return records, nil
}

// ApplyDiscount recomputes price_reserve from the discount rate. Price
// itself is never touched; a rate of zero or less is a no-op.
func (e *RuleEngine) ApplyDiscount(settings *model.EnterpriseSettings, records []model.StockRecord) {
	if settings.DiscountRate <= 0 {
		return
	}
	factor := 1 - settings.DiscountRate/100
	for i := range records {
		records[i].PriceReserve = round2(records[i].PriceReserve * factor)
	}
}

// ApplyCorrection runs the external correction step when the enterprise has
// it enabled. On failure the original batch comes back untouched along with
// the error; the caller decides how loudly to degrade.
func (e *RuleEngine) ApplyCorrection(settings *model.EnterpriseSettings, records []model.StockRecord) ([]model.StockRecord, error) {
	if !settings.StockCorrection {
		return records, nil
	}
	if e.corrector == nil {
		return records, errors.New("stock correction enabled but no corrector configured")
	}
	corrected, err := e.corrector.Correct(settings, records)
	if err != nil {
		return records, err
	}
	return corrected, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
