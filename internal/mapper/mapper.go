package mapper

import (
	"github.com/nazdrin/inventory-sub001/internal/model"
)

// StockRow is a mapped stock record plus the upstream store identifier it
// came with, if any. Branch resolution happens after mapping, against the
// enterprise's branch mappings or its fallback branch.
type StockRow struct {
	Record  model.StockRecord
	StoreID string
}

// CatalogMapper maps raw rows into canonical catalog records. A row without
// a product code is skipped, never an error: one bad record must not abort
// the batch.
type CatalogMapper struct {
	// DefaultVAT fills in sources that carry no tax field.
	DefaultVAT float64
}

func (m CatalogMapper) Map(raw Raw) (model.CatalogRecord, bool) {
	code := raw.Str(codeAliases...)
	if code == "" {
		return model.CatalogRecord{}, false
	}

	vat := m.DefaultVAT
	if raw.Has(vatAliases...) {
		vat = raw.Num(vatAliases...)
	}

	return model.CatalogRecord{
		Code:     code,
		Name:     raw.Str(nameAliases...),
		Producer: raw.Str(producerAliases...),
		Barcode:  raw.Str(barcodeAliases...),
		VAT:      vat,
	}, true
}

// StockMapper maps raw rows into stock rows. Price and qty go through the
// lenient parse; quantities are truncated to whole units and negatives clamp
// to zero; price_reserve defaults to price when the source does not carry it.
type StockMapper struct{}

func (m StockMapper) Map(raw Raw) (StockRow, bool) {
	code := raw.Str(codeAliases...)
	if code == "" {
		return StockRow{}, false
	}

	price := raw.Num(priceAliases...)
	if price < 0 {
		price = 0
	}

	reserve := price
	if raw.Has(reserveAliases...) {
		reserve = raw.Num(reserveAliases...)
	}

	return StockRow{
		Record: model.StockRecord{
			Code:         code,
			Branch:       raw.Str(branchAliases...),
			Price:        price,
			Qty:          clampQty(raw.Num(qtyAliases...)),
			PriceReserve: reserve,
		},
		StoreID: raw.Str(storeIDAliases...),
	}, true
}
