package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ampuero/contable/internal/inventory"
)

type createProductRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	p := &inventory.Product{Code: req.Code, Name: req.Name}
	if err := s.store.CreateProduct(r.Context(), p); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if products == nil {
		products = []inventory.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProductByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type purchaseRequest struct {
	Date     string          `json:"date"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

func (s *Server) recordPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	date, err := parseMovementDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := s.store.RecordPurchase(r.Context(), chi.URLParam(r, "code"), date, req.Quantity, req.UnitCost)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

type saleRequest struct {
	Date     string `json:"date"`
	Quantity int64  `json:"quantity"`
}

func (s *Server) recordSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	date, err := parseMovementDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := s.store.RecordSale(r.Context(), chi.URLParam(r, "code"), date, req.Quantity)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) listMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := s.store.ListMovements(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	if movements == nil {
		movements = []inventory.Movement{}
	}
	writeJSON(w, http.StatusOK, movements)
}

func (s *Server) getKardex(w http.ResponseWriter, r *http.Request) {
	method, err := inventory.ParseMethod(methodParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	k, err := s.store.Kardex(r.Context(), chi.URLParam(r, "code"), method)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (s *Server) allKardexes(w http.ResponseWriter, r *http.Request) {
	method, err := inventory.ParseMethod(methodParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	kardexes, err := s.store.Kardexes(r.Context(), method)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	if kardexes == nil {
		kardexes = []*inventory.Kardex{}
	}
	writeJSON(w, http.StatusOK, kardexes)
}

func methodParam(r *http.Request) string {
	if m := r.URL.Query().Get("method"); m != "" {
		return m
	}
	return "fifo"
}

func parseMovementDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}
