package source

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nazdrin/inventory-sub001/internal/model"
)

type fakeBranches struct {
	mappings []model.BranchMapping
}

func (f *fakeBranches) FindByEnterprise(code string) ([]model.BranchMapping, error) {
	return f.mappings, nil
}

func TestRESTPagedAdapterPaginatesAndTagsStores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("ApiKey") != "key-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		offset := r.URL.Query().Get("offset")
		store := r.URL.Query().Get("store_id")
		if offset == "0" {
			fmt.Fprintf(w, `{"products": [{"product_id": "P1-%s"}, {"product_id": "P2-%s"}]}`, store, store)
			return
		}
		fmt.Fprint(w, `{"products": []}`)
	}))
	defer server.Close()

	branches := &fakeBranches{mappings: []model.BranchMapping{
		{EnterpriseCode: "e1", StoreID: "S1", Branch: "B1"},
		{EnterpriseCode: "e1", StoreID: "S2", Branch: "B2"},
	}}
	adapter := NewRESTPagedAdapter(server.URL, branches)

	payload, err := adapter.Fetch(&model.EnterpriseSettings{Code: "e1", Token: "key-1"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(payload, &rows); err != nil {
		t.Fatalf("payload is not a JSON array: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4 (2 stores x 2 products)", len(rows))
	}
	if rows[0]["store_id"] != "S1" {
		t.Errorf("rows[0].store_id = %v, want S1", rows[0]["store_id"])
	}
	if rows[2]["store_id"] != "S2" {
		t.Errorf("rows[2].store_id = %v, want S2", rows[2]["store_id"])
	}
}

func TestRESTPagedAdapterRejectedKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	branches := &fakeBranches{mappings: []model.BranchMapping{{EnterpriseCode: "e1", StoreID: "S1", Branch: "B1"}}}
	adapter := NewRESTPagedAdapter(server.URL, branches)

	_, err := adapter.Fetch(&model.EnterpriseSettings{Code: "e1", Token: "bad"})
	if err == nil {
		t.Error("expected fetch error for rejected API key")
	}
}

func TestRESTPagedAdapterNoMappedStores(t *testing.T) {
	adapter := NewRESTPagedAdapter("http://example.invalid", &fakeBranches{})
	_, err := adapter.Fetch(&model.EnterpriseSettings{Code: "e1", Token: "key"})
	if err == nil {
		t.Error("expected fetch error when no stores are mapped")
	}
}
