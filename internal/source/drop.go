package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nazdrin/inventory-sub001/internal/model"
)

// DropDirAdapter picks up files landed by the FTP upload server. Drops are
// named <enterprise_code>_<timestamp>.<ext>; the newest one wins and older
// drops for the same enterprise are cleaned up after a successful read.
type DropDirAdapter struct {
	Dir string
	Ext string
}

func NewDropDirAdapter(dir, ext string) *DropDirAdapter {
	return &DropDirAdapter{Dir: dir, Ext: ext}
}

func (a *DropDirAdapter) Fetch(settings *model.EnterpriseSettings) ([]byte, error) {
	pattern := filepath.Join(a.Dir, settings.Code+"_*"+a.Ext)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	if len(matches) == 0 {
		return nil, &FetchError{Message: fmt.Sprintf("no drop found for enterprise %s in %s", settings.Code, a.Dir)}
	}

	// timestamped names sort chronologically
	sort.Strings(matches)
	latest := matches[len(matches)-1]

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}

	for _, stale := range matches[:len(matches)-1] {
		_ = os.Remove(stale)
	}
	return data, nil
}
