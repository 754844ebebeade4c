package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"household-hub/internal/repository"
	"household-hub/internal/service"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "hub.db"), repository.Options{LogLevel: "silent"})
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	assets := service.NewAssetService(db)
	svc := Services{
		Reminders: service.NewReminderService(repository.NewReminderRepository(db), assets, service.ReminderOptions{
			Location: time.UTC,
			Now:      func() time.Time { return now },
		}),
		Assets:      assets,
		Preferences: service.NewPreferencesService(repository.NewPreferencesRepository(db)),
	}
	return NewServer(svc, []string{"http://localhost:5173"}).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func TestReminderLifecycle(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/reminders", map[string]string{
		"title":         "Pay council tax",
		"domain":        "finance",
		"reminder_date": "2024-03-08",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var created struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		DaysUntil int    `json:"days_until"`
		IsOverdue bool   `json:"is_overdue"`
	}
	decode(t, rec, &created)
	if created.Status != "overdue" || created.DaysUntil != -2 || !created.IsOverdue {
		t.Fatalf("created = %+v", created)
	}

	rec = do(t, h, http.MethodGet, "/api/reminders/summary", nil)
	var summary struct {
		Summary struct {
			Total   int `json:"total"`
			Overdue int `json:"overdue"`
		} `json:"summary"`
	}
	decode(t, rec, &summary)
	if summary.Summary.Total != 1 || summary.Summary.Overdue != 1 {
		t.Fatalf("summary = %s", rec.Body)
	}

	if rec = do(t, h, http.MethodPost, "/api/reminders/"+created.ID+"/complete", nil); rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d: %s", rec.Code, rec.Body)
	}
	if rec = do(t, h, http.MethodPost, "/api/reminders/"+created.ID+"/complete", nil); rec.Code != http.StatusConflict {
		t.Fatalf("second complete status = %d", rec.Code)
	}
	if rec = do(t, h, http.MethodPost, "/api/reminders/"+created.ID+"/dismiss", nil); rec.Code != http.StatusConflict {
		t.Fatalf("dismiss after complete status = %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/reminders?status=completed", nil)
	var list struct {
		Reminders []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"reminders"`
	}
	decode(t, rec, &list)
	if len(list.Reminders) != 1 || list.Reminders[0].Status != "completed" {
		t.Fatalf("completed list = %s", rec.Body)
	}
}

func TestReminderErrors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"missing reminder", http.MethodGet, "/api/reminders/nope", nil, http.StatusNotFound},
		{"complete missing", http.MethodPost, "/api/reminders/nope/complete", nil, http.StatusNotFound},
		{"invalid date", http.MethodPost, "/api/reminders", map[string]string{"title": "x", "reminder_date": "tomorrow"}, http.StatusBadRequest},
		{"unknown status", http.MethodGet, "/api/reminders?status=later", nil, http.StatusBadRequest},
		{"bad window", http.MethodGet, "/api/reminders/summary?window=-1", nil, http.StatusBadRequest},
		{"bad asset id", http.MethodGet, "/api/vehicles/abc", nil, http.StatusBadRequest},
		{"missing asset", http.MethodDelete, "/api/documents/42", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestVehiclesFeedGeneration(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/vehicles", map[string]string{
		"registration": "AB12 CDE",
		"make":         "Ford",
		"model":        "Focus",
		"mot_expiry":   "2024-03-25T00:00:00Z",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create vehicle status = %d: %s", rec.Code, rec.Body)
	}

	for i := 0; i < 2; i++ {
		rec = do(t, h, http.MethodPost, "/api/reminders/generate", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("generate status = %d: %s", rec.Code, rec.Body)
		}
	}
	var res service.SyncResult
	decode(t, rec, &res)
	if res.Created != 0 || res.Unchanged != 1 {
		t.Fatalf("second generate = %+v", res)
	}

	rec = do(t, h, http.MethodGet, "/api/reminders?entity_type=vehicle", nil)
	var list struct {
		Reminders []struct {
			Title     string `json:"title"`
			DaysUntil int    `json:"days_until"`
		} `json:"reminders"`
	}
	decode(t, rec, &list)
	if len(list.Reminders) != 1 || list.Reminders[0].DaysUntil != 15 {
		t.Fatalf("vehicle reminders = %s", rec.Body)
	}
}

func TestPreferencesEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/preferences", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = do(t, h, http.MethodPut, "/api/preferences?profile=default", map[string][]string{
		"module_order":    {"plants", "finance"},
		"enabled_modules": {"plants"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body)
	}

	rec = do(t, h, http.MethodGet, "/api/preferences?profile=default", nil)
	var prefs struct {
		ModuleOrder    []string `json:"module_order"`
		EnabledModules []string `json:"enabled_modules"`
	}
	decode(t, rec, &prefs)
	if prefs.ModuleOrder[0] != "plants" || len(prefs.EnabledModules) != 1 {
		t.Fatalf("prefs = %s", rec.Body)
	}
}

func TestHealthAndCORS(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin = %q", got)
	}
}
