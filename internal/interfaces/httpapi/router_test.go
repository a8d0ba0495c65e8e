package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/footmate/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/footmate/internal/platform/id"
	"github.com/riskibarqy/footmate/internal/platform/logging"
	"github.com/riskibarqy/footmate/internal/usecase"
)

func newMasterRouter(t *testing.T) http.Handler {
	t.Helper()
	locations := usecase.NewLocationService(
		memory.NewLocationRepository(memory.SeedCountries(), memory.SeedStates(), memory.SeedCities()),
		memory.NewAbilityRepository(memory.SeedAbilities(), memory.SeedPositions()),
		memory.CountryIDIndia,
		idgen.NewUUIDGenerator(),
		logging.NewNop(),
	)
	handler := NewHandler(Services{Locations: locations}, logging.NewNop())
	return NewRouter(handler, testVerifier, logging.NewNop(), false, nil)
}

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

func doRequest(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_MasterData(t *testing.T) {
	router := newMasterRouter(t)

	rec := doRequest(router, http.MethodGet, "/master/country/byCode/in", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var country envelope[countryDTO]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &country); err != nil {
		t.Fatalf("unmarshal country: %v", err)
	}
	if country.Data.ID != memory.CountryIDIndia || country.Data.PhoneCode != "91" {
		t.Fatalf("unexpected country: %+v", country.Data)
	}

	rec = doRequest(router, http.MethodGet, "/master/state/list?page_no=1&page_size=2", "", "")
	var page envelope[statePageDTO]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal states: %v", err)
	}
	if page.Data.Total != 3 || len(page.Data.Records) != 2 {
		t.Fatalf("unexpected state page: %+v", page.Data)
	}

	rec = doRequest(router, http.MethodGet, "/master/state/list?sort_order=2", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad sort_order, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/master/city/byId/ct-missing", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_AdminGuards(t *testing.T) {
	router := newMasterRouter(t)
	body := `{"name":"Goa"}`

	if rec := doRequest(router, http.MethodPost, "/master/state/add", "", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := doRequest(router, http.MethodPost, "/master/state/add", "player-token", body); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	rec := doRequest(router, http.MethodPost, "/master/state/add", "admin-token", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var state envelope[stateDTO]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if state.Data.Slug != "goa" || state.Data.CountryID != memory.CountryIDIndia {
		t.Fatalf("unexpected state: %+v", state.Data)
	}

	if rec := doRequest(router, http.MethodPost, "/master/state/add", "admin-token", body); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate state, got %d", rec.Code)
	}
	if rec := doRequest(router, http.MethodPost, "/master/state/add", "admin-token", `{"name":"Goa","extra":1}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestRouter_Healthz(t *testing.T) {
	rec := doRequest(newMasterRouter(t), http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_Docs(t *testing.T) {
	handler := NewHandler(Services{}, logging.NewNop())

	enabled := NewRouter(handler, testVerifier, logging.NewNop(), true, nil)
	rec := doRequest(enabled, http.MethodGet, "/openapi.yaml", "", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "openapi:") {
		t.Fatalf("unexpected openapi response %d: %.40s", rec.Code, rec.Body.String())
	}
	rec = doRequest(enabled, http.MethodGet, "/docs", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/openapi.yaml") {
		t.Fatalf("unexpected docs response %d", rec.Code)
	}

	disabled := NewRouter(handler, testVerifier, logging.NewNop(), false, nil)
	if rec := doRequest(disabled, http.MethodGet, "/openapi.yaml", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with docs disabled, got %d", rec.Code)
	}
}
