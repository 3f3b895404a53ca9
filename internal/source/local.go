package source

import (
	"os"

	"github.com/nazdrin/inventory-sub001/internal/model"
)

// LocalFileAdapter reads a feed from disk. Used for manual CLI runs and for
// FTP drops already landed by the upload server.
type LocalFileAdapter struct {
	Path string
}

func (a *LocalFileAdapter) Fetch(_ *model.EnterpriseSettings) ([]byte, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	return data, nil
}
