package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ampuero/contable/internal/ledger"
	"github.com/ampuero/contable/internal/store"
)

type postEntryRequest struct {
	Date        string `json:"date"` // 2006-01-02
	Description string `json:"description"`
	Lines       []struct {
		AccountCode string          `json:"account_code"`
		Debit       decimal.Decimal `json:"debit"`
		Credit      decimal.Decimal `json:"credit"`
	} `json:"lines"`
}

func (s *Server) postEntry(w http.ResponseWriter, r *http.Request) {
	var req postEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	e := &ledger.JournalEntry{Description: req.Description}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: "+err.Error())
			return
		}
		e.Date = date
	}
	for _, l := range req.Lines {
		e.Lines = append(e.Lines, ledger.EntryLine{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}

	if err := s.store.PostEntry(r.Context(), e); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	created, err := s.store.GetEntry(r.Context(), e.ID)
	if err != nil {
		writeJSON(w, http.StatusCreated, e)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	filter := store.EntryFilter{
		AccountCode: r.URL.Query().Get("account"),
	}

	entries, err := s.store.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []ledger.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, e)
}
