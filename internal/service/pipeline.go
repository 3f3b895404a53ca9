package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nazdrin/inventory-sub001/internal/event"
	"github.com/nazdrin/inventory-sub001/internal/mapper"
	"github.com/nazdrin/inventory-sub001/internal/model"
	"github.com/nazdrin/inventory-sub001/internal/repository"
	"github.com/nazdrin/inventory-sub001/internal/source"
	"github.com/nazdrin/inventory-sub001/pkg/validator"
)

// Pipeline is one (enterprise, kind) ingestion cycle: fetch the raw feed,
// map it into canonical records, run the tenant's business rules, then
// replace the stored batch and stamp the upload time in one transaction.
// A run either reaches Done or returns a *PipelineError; there is no
// partial commit.
type Pipeline struct {
	enterprises repository.EnterpriseRepository
	store       repository.IngestStore
	rules       *RuleEngine
	adapters    map[string]source.Adapter
	bus         *event.Bus
}

func NewPipeline(
	enterprises repository.EnterpriseRepository,
	store repository.IngestStore,
	rules *RuleEngine,
	adapters map[string]source.Adapter,
	bus *event.Bus,
) *Pipeline {
	return &Pipeline{
		enterprises: enterprises,
		store:       store,
		rules:       rules,
		adapters:    adapters,
		bus:         bus,
	}
}

// Supports reports whether a converter is registered for the format.
func (p *Pipeline) Supports(format string) bool {
	_, ok := p.adapters[format]
	return ok
}

// Run executes the cycle using the adapter registered for the enterprise's
// data format.
func (p *Pipeline) Run(enterpriseCode string, kind model.RecordKind) error {
	return p.RunWithAdapter(enterpriseCode, kind, nil)
}

// RunWithAdapter is Run with a transport override, used by the CLI to feed
// a local file through the same cycle.
func (p *Pipeline) RunWithAdapter(enterpriseCode string, kind model.RecordKind, override source.Adapter) error {
	runID := uuid.NewString()[:8]
	start := time.Now()

	settings, err := p.enterprises.FindByCode(enterpriseCode)
	if err != nil {
		return p.fail(runID, enterpriseCode, kind, ConfigError, fmt.Errorf("loading settings: %w", err))
	}
	if errs := validator.ValidateStruct(settings); len(errs) > 0 {
		first := errs[0]
		return p.fail(runID, enterpriseCode, kind, ConfigError,
			fmt.Errorf("invalid settings: field '%s' failed on tag '%s'", first.FailedField, first.Tag))
	}

	adapter := override
	if adapter == nil {
		var ok bool
		adapter, ok = p.adapters[settings.DataFormat]
		if !ok {
			return p.fail(runID, enterpriseCode, kind, ConfigError,
				fmt.Errorf("no converter for data format %q", settings.DataFormat))
		}
	}

	// Fetching
	payload, err := adapter.Fetch(settings)
	if err != nil {
		return p.fail(runID, enterpriseCode, kind, FetchError, err)
	}
	if len(payload) == 0 {
		return p.fail(runID, enterpriseCode, kind, FetchError, errors.New("source returned an empty payload"))
	}

	// Mapping
	rows, err := mapper.Decode(settings.DataFormat, payload)
	if err != nil {
		return p.fail(runID, enterpriseCode, kind, ParseError, err)
	}

	var runErr error
	switch kind {
	case model.KindCatalog:
		runErr = p.runCatalog(runID, settings, rows, start)
	case model.KindStock:
		runErr = p.runStock(runID, settings, rows, start)
	default:
		runErr = p.fail(runID, enterpriseCode, kind, ConfigError, fmt.Errorf("unknown record kind %q", kind))
	}
	return runErr
}

func (p *Pipeline) runCatalog(runID string, settings *model.EnterpriseSettings, rows []mapper.Raw, start time.Time) error {
	m := mapper.CatalogMapper{DefaultVAT: settings.DefaultVAT}

	batch := make([]model.CatalogRecord, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		record, ok := m.Map(row)
		if !ok {
			skipped++
			continue
		}
		batch = append(batch, record)
	}
	if skipped > 0 {
		log.Printf("pipeline[%s]: enterprise %s: skipped %d catalog records without a code", runID, settings.Code, skipped)
	}
	if len(batch) == 0 {
		// do not wipe good data over an empty upstream response
		return p.fail(runID, settings.Code, model.KindCatalog, EmptyResult, errors.New("no mappable catalog records"))
	}

	if err := p.store.ReplaceCatalog(settings.Code, batch, time.Now().UTC()); err != nil {
		return p.fail(runID, settings.Code, model.KindCatalog, PersistError, err)
	}

	log.Printf("pipeline[%s]: enterprise %s: catalog done, %d records (%d skipped) in %s",
		runID, settings.Code, len(batch), skipped, time.Since(start).Round(time.Millisecond))
	return nil
}

func (p *Pipeline) runStock(runID string, settings *model.EnterpriseSettings, rows []mapper.Raw, start time.Time) error {
	m := mapper.StockMapper{}

	mapped := make([]mapper.StockRow, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		stockRow, ok := m.Map(row)
		if !ok {
			skipped++
			continue
		}
		mapped = append(mapped, stockRow)
	}
	if skipped > 0 {
		log.Printf("pipeline[%s]: enterprise %s: skipped %d stock records without a code", runID, settings.Code, skipped)
	}
	if len(mapped) == 0 {
		return p.fail(runID, settings.Code, model.KindStock, EmptyResult, errors.New("no mappable stock records"))
	}

	// Rules: branch resolution first, then discount, then correction.
	batch, err := p.rules.ResolveBranches(settings, mapped)
	if err != nil {
		return p.fail(runID, settings.Code, model.KindStock, ConfigError, err)
	}
	if len(batch) == 0 {
		return p.fail(runID, settings.Code, model.KindStock, EmptyResult,
			errors.New("no stock records left after branch resolution"))
	}

	p.rules.ApplyDiscount(settings, batch)

	batch, corrErr := p.rules.ApplyCorrection(settings, batch)
	if corrErr != nil {
		// degraded run: the uncorrected batch still gets written
		log.Printf("pipeline[%s]: enterprise %s: stock correction skipped: %v", runID, settings.Code, corrErr)
		p.emit(runID, settings.Code, model.KindStock, RuleError, corrErr)
	}

	if err := p.store.ReplaceStock(settings.Code, batch, time.Now().UTC()); err != nil {
		return p.fail(runID, settings.Code, model.KindStock, PersistError, err)
	}

	log.Printf("pipeline[%s]: enterprise %s: stock done, %d records (%d skipped) in %s",
		runID, settings.Code, len(batch), skipped, time.Since(start).Round(time.Millisecond))
	return nil
}

func (p *Pipeline) fail(runID, enterpriseCode string, kind model.RecordKind, errKind ErrorKind, err error) error {
	log.Printf("pipeline[%s]: enterprise %s: %s failed: %s: %v", runID, enterpriseCode, kind, errKind, err)
	p.emit(runID, enterpriseCode, kind, errKind, err)
	return &PipelineError{Kind: errKind, Enterprise: enterpriseCode, Err: err}
}

func (p *Pipeline) emit(runID, enterpriseCode string, kind model.RecordKind, errKind ErrorKind, err error) {
	if p.bus == nil {
		return
	}
	p.bus.Emit(event.Failure{
		RunID:      runID,
		Enterprise: enterpriseCode,
		Kind:       string(kind),
		ErrorKind:  string(errKind),
		Detail:     err.Error(),
		At:         time.Now().UTC(),
	})
}
