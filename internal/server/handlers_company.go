package server

import (
	"encoding/json"
	"net/http"

	"github.com/ampuero/contable/internal/ledger"
)

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCompany(r.Context())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) setCompany(w http.ResponseWriter, r *http.Request) {
	var c ledger.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := s.store.SetCompany(r.Context(), &c); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}
