package service

import (
	"errors"
	"testing"
	"time"

	"github.com/nazdrin/inventory-sub001/internal/model"
	"github.com/nazdrin/inventory-sub001/internal/source"
)

func TestDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-30 * time.Minute)
	recent := now.Add(-5 * time.Minute)

	tests := []struct {
		name string
		freq int
		last *time.Time
		want bool
	}{
		{"disabled cadence", 0, nil, false},
		{"negative cadence", -1, &past, false},
		{"never uploaded", 15, nil, true},
		{"overdue", 15, &past, true},
		{"not yet due", 15, &recent, false},
		{"due exactly on the boundary", 5, &recent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &model.EnterpriseSettings{
				Code:                 "e1",
				StockUploadFrequency: tt.freq,
				LastStockUpload:      tt.last,
			}
			if got := Due(e, model.KindStock, now); got != tt.want {
				t.Errorf("Due = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDuePerKindIndependence(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	e := &model.EnterpriseSettings{
		Code:                   "e1",
		CatalogUploadFrequency: 0,
		StockUploadFrequency:   10,
		LastStockUpload:        &past,
	}
	if Due(e, model.KindCatalog, now) {
		t.Error("catalog must not be due with cadence 0")
	}
	if !Due(e, model.KindStock, now) {
		t.Error("stock must be due")
	}
}

// perCodeAdapter serves a payload per enterprise and fails for the rest.
type perCodeAdapter struct {
	payloads map[string][]byte
}

func (a *perCodeAdapter) Fetch(settings *model.EnterpriseSettings) ([]byte, error) {
	data, ok := a.payloads[settings.Code]
	if !ok {
		return nil, &source.FetchError{Status: 500, Message: "boom"}
	}
	return data, nil
}

func TestTickContainsPerEnterpriseFailures(t *testing.T) {
	broken := jsonFeedEnterprise("broken")
	broken.StockUploadFrequency = 1
	healthy := jsonFeedEnterprise("healthy")
	healthy.StockUploadFrequency = 1

	enterprises := &fakeEnterprises{byCode: map[string]*model.EnterpriseSettings{
		"broken":  broken,
		"healthy": healthy,
	}}
	store := newFakeStore()
	adapter := &perCodeAdapter{payloads: map[string][]byte{
		"healthy": []byte(`[{"code": "A", "price": "1", "qty": "1"}]`),
	}}
	pipeline := NewPipeline(enterprises, store, NewRuleEngine(&fakeBranchRepo{}, nil),
		map[string]source.Adapter{model.FormatJSONFeed: adapter}, nil)

	s := NewScheduler(model.KindStock, enterprises, pipeline, nil)
	s.Tick()

	if len(store.stock["healthy"]) != 1 {
		t.Error("healthy enterprise must be processed even when a sibling fails")
	}
	if len(store.stock["broken"]) != 0 {
		t.Error("broken enterprise must not have written anything")
	}
}

func TestTickSkipsUnsupportedFormat(t *testing.T) {
	legacy := jsonFeedEnterprise("legacy")
	legacy.DataFormat = "legacy_dbf"
	legacy.StockUploadFrequency = 1

	enterprises := &fakeEnterprises{byCode: map[string]*model.EnterpriseSettings{"legacy": legacy}}
	store := newFakeStore()
	pipeline := NewPipeline(enterprises, store, NewRuleEngine(&fakeBranchRepo{}, nil),
		map[string]source.Adapter{}, nil)

	s := NewScheduler(model.KindStock, enterprises, pipeline, nil)
	s.Tick() // must not panic or write

	if len(store.stock["legacy"]) != 0 {
		t.Error("unsupported format must be skipped")
	}
}

func TestTickAbandonsPassWhenDatabaseUnreachable(t *testing.T) {
	due := jsonFeedEnterprise("e1")
	due.StockUploadFrequency = 1

	enterprises := &fakeEnterprises{byCode: map[string]*model.EnterpriseSettings{"e1": due}}
	store := newFakeStore()
	adapter := &perCodeAdapter{payloads: map[string][]byte{"e1": []byte(`[{"code":"A","price":"1","qty":"1"}]`)}}
	pipeline := NewPipeline(enterprises, store, NewRuleEngine(&fakeBranchRepo{}, nil),
		map[string]source.Adapter{model.FormatJSONFeed: adapter}, nil)

	ping := func() error { return errors.New("connection refused") }
	s := NewScheduler(model.KindStock, enterprises, pipeline, ping)
	s.Tick()

	if len(store.stock["e1"]) != 0 {
		t.Error("an unreachable database must abandon the whole pass")
	}
}

func TestTickSkipsEnterprisesNotDue(t *testing.T) {
	now := time.Now()
	e := jsonFeedEnterprise("e1")
	e.StockUploadFrequency = 60
	e.LastStockUpload = &now

	enterprises := &fakeEnterprises{byCode: map[string]*model.EnterpriseSettings{"e1": e}}
	store := newFakeStore()
	adapter := &perCodeAdapter{payloads: map[string][]byte{"e1": []byte(`[{"code":"A","price":"1","qty":"1"}]`)}}
	pipeline := NewPipeline(enterprises, store, NewRuleEngine(&fakeBranchRepo{}, nil),
		map[string]source.Adapter{model.FormatJSONFeed: adapter}, nil)

	s := NewScheduler(model.KindStock, enterprises, pipeline, nil)
	s.Tick()

	if len(store.stock["e1"]) != 0 {
		t.Error("enterprise uploaded a minute ago must not run again yet")
	}
}
