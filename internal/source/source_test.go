package source

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nazdrin/inventory-sub001/internal/model"
)

func TestHTTPFeedAdapterFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"code":"A"}]`)
	}))
	defer server.Close()

	data, err := NewHTTPFeedAdapter().Fetch(&model.EnterpriseSettings{Code: "e1", Token: server.URL})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != `[{"code":"A"}]` {
		t.Errorf("data = %q", data)
	}
}

func TestHTTPFeedAdapterNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewHTTPFeedAdapter().Fetch(&model.EnterpriseSettings{Code: "e1", Token: server.URL})
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fetchErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", fetchErr.Status)
	}
}

func TestHTTPFeedAdapterMissingURL(t *testing.T) {
	_, err := NewHTTPFeedAdapter().Fetch(&model.EnterpriseSettings{Code: "e1"})
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("err = %v, want *FetchError", err)
	}
}

func TestLocalFileAdapterMissingFile(t *testing.T) {
	adapter := &LocalFileAdapter{Path: filepath.Join(t.TempDir(), "absent.json")}
	_, err := adapter.Fetch(&model.EnterpriseSettings{Code: "e1"})
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("err = %v, want *FetchError", err)
	}
}

func TestDropDirAdapterPicksLatestAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("e1_20250601120000.csv", "old")
	write("e1_20250602120000.csv", "new")
	write("e2_20250603120000.csv", "other tenant")

	adapter := NewDropDirAdapter(dir, ".csv")
	data, err := adapter.Fetch(&model.EnterpriseSettings{Code: "e1"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("data = %q, want the latest drop", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "e1_20250601120000.csv")); !os.IsNotExist(err) {
		t.Error("stale drop should have been removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "e2_20250603120000.csv")); err != nil {
		t.Error("other tenants' drops must be left alone")
	}
}

func TestDropDirAdapterNoDrop(t *testing.T) {
	adapter := NewDropDirAdapter(t.TempDir(), ".csv")
	_, err := adapter.Fetch(&model.EnterpriseSettings{Code: "e1"})
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("err = %v, want *FetchError", err)
	}
}
