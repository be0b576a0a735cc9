// Package server exposes health and last-evaluation status in watch mode.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"fundwatch/internal/journal"
)

func NewMux(j *journal.Journal, log zerolog.Logger) *http.ServeMux {
	l := log.With().Str("component", "http").Logger()
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		entry, ok, err := j.Latest()
		if err != nil {
			l.Error().Err(err).Msg("status query failed")
			http.Error(w, "journal unavailable", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "no evaluations yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entry)
	})
	return mux
}

func ListenAndServe(addr string, mux *http.ServeMux) error {
	return http.ListenAndServe(addr, mux)
}
