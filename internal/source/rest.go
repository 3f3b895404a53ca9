package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nazdrin/inventory-sub001/internal/model"
	"github.com/nazdrin/inventory-sub001/internal/repository"
)

const pageLimit = 100

// RESTPagedAdapter pulls product pages from an inventory API with
// limit/offset pagination, one pass per mapped store. The enterprise token
// is the API key; the endpoint is deployment configuration. Each product is
// tagged with the store_id it was fetched for so branch resolution can run
// per sub-record downstream.
type RESTPagedAdapter struct {
	Endpoint string
	branches repository.BranchMappingRepository
	client   *http.Client
	limiter  *rate.Limiter
}

func NewRESTPagedAdapter(endpoint string, branches repository.BranchMappingRepository) *RESTPagedAdapter {
	return &RESTPagedAdapter{
		Endpoint: endpoint,
		branches: branches,
		client:   &http.Client{Timeout: 30 * time.Second},
		// the upstream API throttles aggressive pagination
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

func (a *RESTPagedAdapter) Fetch(settings *model.EnterpriseSettings) ([]byte, error) {
	if a.Endpoint == "" {
		return nil, &FetchError{Message: "no REST endpoint configured"}
	}
	if settings.Token == "" {
		return nil, &FetchError{Message: "enterprise has no API key configured"}
	}

	mappings, err := a.branches.FindByEnterprise(settings.Code)
	if err != nil {
		return nil, &FetchError{Message: "loading store mappings: " + err.Error()}
	}
	if len(mappings) == 0 {
		return nil, &FetchError{Message: "enterprise has no mapped stores"}
	}

	var all []map[string]interface{}
	for _, m := range mappings {
		rows, err := a.fetchStore(settings.Token, m.StoreID)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}

	payload, err := json.Marshal(all)
	if err != nil {
		return nil, &FetchError{Message: "encoding aggregated pages: " + err.Error()}
	}
	return payload, nil
}

func (a *RESTPagedAdapter) fetchStore(apiKey, storeID string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	for offset := 0; ; offset += pageLimit {
		page, err := a.fetchPage(apiKey, storeID, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return rows, nil
		}
		for _, product := range page {
			product["store_id"] = storeID
			rows = append(rows, product)
		}
	}
}

func (a *RESTPagedAdapter) fetchPage(apiKey, storeID string, offset int) ([]map[string]interface{}, error) {
	if err := a.limiter.Wait(context.Background()); err != nil {
		return nil, &FetchError{Message: err.Error()}
	}

	url := fmt.Sprintf("%s?limit=%d&offset=%d&store_id=%s", a.Endpoint, pageLimit, offset, storeID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	req.Header.Set("ApiKey", apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Status: resp.StatusCode, Message: "products request rejected"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}

	var envelope struct {
		Products []map[string]interface{} `json:"products"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &FetchError{Message: "decoding products page: " + err.Error()}
	}
	return envelope.Products, nil
}
