package handler

import (
	"errors"

	"github.com/nazdrin/inventory-sub001/internal/model"
	"github.com/nazdrin/inventory-sub001/internal/repository"
	"github.com/nazdrin/inventory-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IngestHandler struct {
	pipeline    *service.Pipeline
	enterprises repository.EnterpriseRepository
	catalog     repository.CatalogRepository
	stock       repository.StockRepository
}

func NewIngestHandler(pipeline *service.Pipeline, enterprises repository.EnterpriseRepository, catalog repository.CatalogRepository, stock repository.StockRepository) *IngestHandler {
	return &IngestHandler{pipeline: pipeline, enterprises: enterprises, catalog: catalog, stock: stock}
}

func (h *IngestHandler) GetEnterprises(c *fiber.Ctx) error {
	enterprises, err := h.enterprises.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch enterprises"})
	}
	return c.JSON(enterprises)
}

// GetEnterpriseSummary reports the stored batch sizes and upload stamps for
// one enterprise.
func (h *IngestHandler) GetEnterpriseSummary(c *fiber.Ctx) error {
	code := c.Params("enterprise")
	settings, err := h.enterprises.FindByCode(code)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Enterprise not found"})
	}

	catalogCount, err := h.catalog.CountByEnterprise(code)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to count catalog records"})
	}
	stockCount, err := h.stock.CountByEnterprise(code)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to count stock records"})
	}

	return c.JSON(fiber.Map{
		"enterprise_code":     settings.Code,
		"data_format":         settings.DataFormat,
		"catalog_records":     catalogCount,
		"stock_records":       stockCount,
		"last_catalog_upload": settings.LastCatalogUpload,
		"last_stock_upload":   settings.LastStockUpload,
	})
}

// RunPipeline triggers one ingestion cycle synchronously and reports the
// terminal state.
func (h *IngestHandler) RunPipeline(c *fiber.Ctx) error {
	enterpriseCode := c.Params("enterprise")
	kind := model.RecordKind(c.Params("kind"))
	if !kind.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "kind must be 'catalog' or 'stock'"})
	}

	if err := h.pipeline.Run(enterpriseCode, kind); err != nil {
		var pErr *service.PipelineError
		if errors.As(err, &pErr) {
			return c.Status(statusForKind(pErr.Kind)).JSON(fiber.Map{
				"error":      pErr.Err.Error(),
				"error_kind": string(pErr.Kind),
				"enterprise": pErr.Enterprise,
			})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "done", "enterprise": enterpriseCode, "kind": string(kind)})
}

func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.ConfigError:
		return 422
	case service.FetchError, service.ParseError, service.EmptyResult:
		return 502
	default:
		return 500
	}
}
