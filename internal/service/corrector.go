package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nazdrin/inventory-sub001/internal/model"
)

// OrdersCorrector adjusts quantities against the tenant's orders API: goods
// sitting in open orders are reserved, so reported qty is reduced by the
// reserved amount and clamped at zero.
type OrdersCorrector struct {
	client *http.Client
}

func NewOrdersCorrector() *OrdersCorrector {
	return &OrdersCorrector{client: &http.Client{Timeout: 30 * time.Second}}
}

func (c *OrdersCorrector) Correct(settings *model.EnterpriseSettings, records []model.StockRecord) ([]model.StockRecord, error) {
	if settings.OrderEndpoint == "" {
		return nil, errors.New("enterprise has no order endpoint configured")
	}

	branches := make(map[string]bool)
	for _, r := range records {
		branches[r.Branch] = true
	}

	reserved := make(map[string]map[string]float64, len(branches)) // branch -> code -> qty
	for branch := range branches {
		byCode, err := c.fetchReserved(settings, branch)
		if err != nil {
			return nil, fmt.Errorf("orders for branch %s: %w", branch, err)
		}
		reserved[branch] = byCode
	}

	corrected := make([]model.StockRecord, len(records))
	for i, r := range records {
		if qty, ok := reserved[r.Branch][r.Code]; ok {
			remaining := float64(r.Qty) - qty
			if remaining < 0 {
				remaining = 0
			}
			r.Qty = int(remaining)
		}
		corrected[i] = r
	}
	return corrected, nil
}

func (c *OrdersCorrector) fetchReserved(settings *model.EnterpriseSettings, branch string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/api/orders/%s/4", settings.OrderEndpoint, branch)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(settings.OrderLogin, settings.OrderPassword)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("orders API status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var orders []struct {
		Rows []struct {
			GoodsCode interface{} `json:"goodsCode"` // number in some deployments, string in others
			Qty       float64     `json:"qty"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}

	reserved := make(map[string]float64)
	for _, order := range orders {
		for _, row := range order.Rows {
			if row.GoodsCode == nil {
				continue
			}
			reserved[fmt.Sprintf("%v", row.GoodsCode)] += row.Qty
		}
	}
	return reserved, nil
}
