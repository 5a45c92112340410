package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ampuero/contable/internal/importer"
	"github.com/ampuero/contable/internal/ledger"
)

type createAccountRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Nature string `json:"nature"`
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	nature, err := ledger.ParseNature(req.Nature)
	if err != nil {
		// Fall back to the class convention when no nature was given.
		if req.Nature == "" {
			if n, ok := ledger.NatureForClass(ledger.ClassOf(req.Code)); ok {
				nature = n
			} else {
				writeError(w, http.StatusBadRequest, "nature is required for class "+ledger.ClassOf(req.Code))
				return
			}
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	acct := &ledger.Account{
		Code:   req.Code,
		Name:   req.Name,
		Type:   req.Type,
		Nature: nature,
	}

	if err := s.store.CreateAccount(r.Context(), acct); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, acct)
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	accounts, err := s.store.ListAccountsByPrefix(r.Context(), prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := s.store.GetAccountByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) getAccountBalance(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	// The code doubles as a prefix: a group code aggregates its children.
	balance, err := s.store.BalanceFor(r.Context(), code)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"code":    code,
		"balance": balance,
	})
}

func (s *Server) getAccountHistory(w http.ResponseWriter, r *http.Request) {
	h, err := s.store.AccountHistory(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAccount(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// importChart accepts an xlsx body and loads it as a chart of accounts.
func (s *Server) importChart(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	res, err := importer.ImportChart(r.Context(), r.Body, s.store)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
