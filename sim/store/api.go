package store

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter exposes the latest run read-only:
//
//	GET /api/v1/leagues
//	GET /api/v1/leagues/{name}/champions
//	GET /api/v1/leagues/{name}/expansions
//	GET /api/v1/leagues/{name}/seasons/{year}
func NewRouter(s *Store) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/leagues", s.handleLeagues).Methods(http.MethodGet)
	api.HandleFunc("/leagues/{name}/champions", s.handleChampions).Methods(http.MethodGet)
	api.HandleFunc("/leagues/{name}/expansions", s.handleExpansions).Methods(http.MethodGet)
	api.HandleFunc("/leagues/{name}/seasons/{year:[0-9]+}", s.handleSeason).Methods(http.MethodGet)
	return r
}

func (s *Store) handleLeagues(w http.ResponseWriter, _ *http.Request) {
	leagues, err := s.Leagues()
	writeResult(w, leagues, err)
}

func (s *Store) handleChampions(w http.ResponseWriter, r *http.Request) {
	champs, err := s.Champions(mux.Vars(r)["name"])
	writeResult(w, champs, err)
}

func (s *Store) handleExpansions(w http.ResponseWriter, r *http.Request) {
	exps, err := s.Expansions(mux.Vars(r)["name"])
	writeResult(w, exps, err)
}

func (s *Store) handleSeason(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	season, err := s.Season(vars["name"], year)
	writeResult(w, season, err)
}

func writeResult(w http.ResponseWriter, v any, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		logrus.Errorf("api: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("api: encoding response: %v", err)
	}
}
