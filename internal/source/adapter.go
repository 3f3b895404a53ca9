package source

import (
	"fmt"

	"github.com/nazdrin/inventory-sub001/internal/model"
)

// Adapter fetches one enterprise's raw feed payload. Implementations cover
// the transports; what the bytes mean is the mapper's business.
type Adapter interface {
	Fetch(settings *model.EnterpriseSettings) ([]byte, error)
}

// FetchError is any transport-level failure: non-2xx response, network
// error, missing credentials, unreadable drop file.
type FetchError struct {
	Status  int // HTTP status when applicable, 0 otherwise
	Message string
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch failed: status %d: %s", e.Status, e.Message)
	}
	return "fetch failed: " + e.Message
}
