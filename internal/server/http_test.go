package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fundwatch/internal/journal"
)

func testMux(t *testing.T) (*http.ServeMux, *journal.Journal) {
	t.Helper()
	db, err := journal.Open(":memory:")
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := journal.InitSchema(db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	j := journal.New(db)
	return NewMux(j, zerolog.Nop()), j
}

func TestHealthz(t *testing.T) {
	mux, _ := testMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	mux, j := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("empty journal status = %d, want 404", rec.Code)
	}

	entry := journal.Entry{At: time.Unix(1700000000, 0), WeightedReturn: -2.8, Observed: 2, Triggered: true, Delivered: true}
	if err := j.Record(entry); err != nil {
		t.Fatalf("record: %v", err)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got journal.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.WeightedReturn != -2.8 || !got.Triggered || !got.Delivered {
		t.Errorf("status entry = %+v", got)
	}
}
