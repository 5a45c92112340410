package server

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ampuero/contable/internal/store"
)

type Server struct {
	store  *store.Store
	router chi.Router
	addr   string
}

func New(st *store.Store, addr string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{store: st, router: r, addr: addr}

	r.Route("/api/v1", func(r chi.Router) {
		// Chart of accounts
		r.Post("/accounts", s.createAccount)
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{code}", s.getAccount)
		r.Get("/accounts/{code}/balance", s.getAccountBalance)
		r.Get("/accounts/{code}/ledger", s.getAccountHistory)
		r.Delete("/accounts/{code}", s.deleteAccount)
		r.Post("/accounts/import", s.importChart)

		// Journal
		r.Post("/entries", s.postEntry)
		r.Get("/entries", s.listEntries)
		r.Get("/entries/{id}", s.getEntry)

		// Inventory
		r.Post("/products", s.createProduct)
		r.Get("/products", s.listProducts)
		r.Get("/products/{code}", s.getProduct)
		r.Post("/products/{code}/purchases", s.recordPurchase)
		r.Post("/products/{code}/sales", s.recordSale)
		r.Get("/products/{code}/movements", s.listMovements)
		r.Get("/products/{code}/kardex", s.getKardex)

		// Statements
		r.Get("/reports/trial-balance", s.trialBalance)
		r.Get("/reports/opening-balance", s.openingBalance)
		r.Get("/reports/income-statement", s.incomeStatement)
		r.Get("/reports/balance-sheet", s.balanceSheet)
		r.Get("/reports/kardex", s.allKardexes)

		// Company profile
		r.Get("/company", s.getCompany)
		r.Put("/company", s.setCompany)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	log.Printf("contable server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
