package service

import (
	"errors"
	"testing"

	"github.com/nazdrin/inventory-sub001/internal/mapper"
	"github.com/nazdrin/inventory-sub001/internal/model"
)

type fakeBranchRepo struct {
	mappings []model.BranchMapping
	err      error
}

func (f *fakeBranchRepo) FindByEnterprise(code string) ([]model.BranchMapping, error) {
	return f.mappings, f.err
}

type fakeCorrector struct {
	out    []model.StockRecord
	err    error
	called bool
}

func (f *fakeCorrector) Correct(settings *model.EnterpriseSettings, records []model.StockRecord) ([]model.StockRecord, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func stockRows(codes ...string) []mapper.StockRow {
	rows := make([]mapper.StockRow, len(codes))
	for i, c := range codes {
		rows[i] = mapper.StockRow{Record: model.StockRecord{Code: c, Price: 10, Qty: 1, PriceReserve: 10}}
	}
	return rows
}

func TestApplyDiscount(t *testing.T) {
	engine := NewRuleEngine(&fakeBranchRepo{}, nil)

	records := []model.StockRecord{{Code: "A", Price: 100, PriceReserve: 100}}
	engine.ApplyDiscount(&model.EnterpriseSettings{DiscountRate: 10}, records)

	if records[0].PriceReserve != 90 {
		t.Errorf("PriceReserve = %v, want 90", records[0].PriceReserve)
	}
	if records[0].Price != 100 {
		t.Errorf("Price = %v, discount must not touch price", records[0].Price)
	}
}

func TestApplyDiscountRounding(t *testing.T) {
	engine := NewRuleEngine(&fakeBranchRepo{}, nil)

	records := []model.StockRecord{{Code: "A", PriceReserve: 33.33}}
	engine.ApplyDiscount(&model.EnterpriseSettings{DiscountRate: 15}, records)

	if records[0].PriceReserve != 28.33 {
		t.Errorf("PriceReserve = %v, want 28.33 (rounded to 2 decimals)", records[0].PriceReserve)
	}
}

func TestApplyDiscountZeroRateNoOp(t *testing.T) {
	engine := NewRuleEngine(&fakeBranchRepo{}, nil)

	records := []model.StockRecord{{Code: "A", PriceReserve: 100}}
	engine.ApplyDiscount(&model.EnterpriseSettings{DiscountRate: 0}, records)

	if records[0].PriceReserve != 100 {
		t.Errorf("PriceReserve = %v, want unchanged 100", records[0].PriceReserve)
	}
}

func TestResolveBranchesFallback(t *testing.T) {
	engine := NewRuleEngine(&fakeBranchRepo{}, nil)
	settings := &model.EnterpriseSettings{Code: "e1", BranchID: "B-MAIN"}

	records, err := engine.ResolveBranches(settings, stockRows("A", "B", "C"))
	if err != nil {
		t.Fatalf("ResolveBranches: %v", err)
	}
	for _, r := range records {
		if r.Branch != "B-MAIN" {
			t.Errorf("Branch = %q, want fallback B-MAIN", r.Branch)
		}
	}
}

func TestResolveBranchesNoFallbackAbandonsBatch(t *testing.T) {
	engine := NewRuleEngine(&fakeBranchRepo{}, nil)
	settings := &model.EnterpriseSettings{Code: "e1"}

	_, err := engine.ResolveBranches(settings, stockRows("A"))
	if !errors.Is(err, ErrNoFallbackBranch) {
		t.Errorf("err = %v, want ErrNoFallbackBranch", err)
	}
}

func TestResolveBranchesByStoreID(t *testing.T) {
	engine := NewRuleEngine(&fakeBranchRepo{mappings: []model.BranchMapping{
		{EnterpriseCode: "e1", StoreID: "S1", Branch: "B1"},
	}}, nil)
	settings := &model.EnterpriseSettings{Code: "e1", BranchID: "B-MAIN"}

	rows := []mapper.StockRow{
		{Record: model.StockRecord{Code: "A"}, StoreID: "S1"},
		{Record: model.StockRecord{Code: "B"}, StoreID: "S-unknown"},
		{Record: model.StockRecord{Code: "C", Branch: "B-EXPLICIT"}},
	}

	records, err := engine.ResolveBranches(settings, rows)
	if err != nil {
		t.Fatalf("ResolveBranches: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (unknown store dropped)", len(records))
	}
	if records[0].Branch != "B1" {
		t.Errorf("records[0].Branch = %q, want mapped B1", records[0].Branch)
	}
	if records[1].Branch != "B-EXPLICIT" {
		t.Errorf("records[1].Branch = %q, want B-EXPLICIT kept", records[1].Branch)
	}
}

func TestApplyCorrectionDisabled(t *testing.T) {
	corrector := &fakeCorrector{}
	engine := NewRuleEngine(&fakeBranchRepo{}, corrector)

	records := []model.StockRecord{{Code: "A", Qty: 5}}
	out, err := engine.ApplyCorrection(&model.EnterpriseSettings{StockCorrection: false}, records)
	if err != nil {
		t.Fatalf("ApplyCorrection: %v", err)
	}
	if corrector.called {
		t.Error("corrector must not run when the flag is off")
	}
	if out[0].Qty != 5 {
		t.Errorf("Qty = %v, want untouched 5", out[0].Qty)
	}
}

func TestApplyCorrectionFailureReturnsOriginalBatch(t *testing.T) {
	corrector := &fakeCorrector{err: errors.New("orders API down")}
	engine := NewRuleEngine(&fakeBranchRepo{}, corrector)

	records := []model.StockRecord{{Code: "A", Qty: 5}}
	out, err := engine.ApplyCorrection(&model.EnterpriseSettings{StockCorrection: true}, records)
	if err == nil {
		t.Fatal("expected correction error")
	}
	if len(out) != 1 || out[0].Qty != 5 {
		t.Errorf("out = %v, want original batch back", out)
	}
}

func TestApplyCorrectionSuccess(t *testing.T) {
	corrector := &fakeCorrector{out: []model.StockRecord{{Code: "A", Qty: 2}}}
	engine := NewRuleEngine(&fakeBranchRepo{}, corrector)

	out, err := engine.ApplyCorrection(&model.EnterpriseSettings{StockCorrection: true},
		[]model.StockRecord{{Code: "A", Qty: 5}})
	if err != nil {
		t.Fatalf("ApplyCorrection: %v", err)
	}
	if out[0].Qty != 2 {
		t.Errorf("Qty = %v, want corrected 2", out[0].Qty)
	}
}
