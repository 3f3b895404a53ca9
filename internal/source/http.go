package source

import (
	"io"
	"net/http"
	"time"

	"github.com/nazdrin/inventory-sub001/internal/model"
)

// HTTPFeedAdapter downloads a feed by plain GET. The enterprise token holds
// the full feed URL (YML/XML exports, Drive export links, hosted xlsx).
type HTTPFeedAdapter struct {
	client *http.Client
}

func NewHTTPFeedAdapter() *HTTPFeedAdapter {
	return &HTTPFeedAdapter{
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *HTTPFeedAdapter) Fetch(settings *model.EnterpriseSettings) ([]byte, error) {
	if settings.Token == "" {
		return nil, &FetchError{Message: "enterprise has no feed URL configured"}
	}

	resp, err := a.client.Get(settings.Token)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode, Message: "feed returned non-success status"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Message: "reading feed body: " + err.Error()}
	}
	return data, nil
}
