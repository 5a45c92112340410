package server

import (
	"net/http"
)

func (s *Server) trialBalance(w http.ResponseWriter, r *http.Request) {
	tb, err := s.store.TrialBalance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tb)
}

// openingBalance is a 404 until a first entry exists; the opening entry is
// whichever committed entry sorts first.
func (s *Server) openingBalance(w http.ResponseWriter, r *http.Request) {
	ob, err := s.store.OpeningBalance(r.Context())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ob)
}

func (s *Server) incomeStatement(w http.ResponseWriter, r *http.Request) {
	is, err := s.store.IncomeStatement(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, is)
}

// balanceSheet folds the period's net income into equity before checking
// the accounting equation.
func (s *Server) balanceSheet(w http.ResponseWriter, r *http.Request) {
	is, err := s.store.IncomeStatement(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	bs, err := s.store.BalanceSheet(r.Context(), is.NetIncome)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bs)
}
