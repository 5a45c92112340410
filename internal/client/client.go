// Package client is a typed HTTP client for the contable API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ampuero/contable/internal/inventory"
	"github.com/ampuero/contable/internal/ledger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError carries the server's error payload and status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

func (c *Client) CreateAccount(ctx context.Context, acct *ledger.Account) (*ledger.Account, error) {
	body := map[string]any{
		"code":   acct.Code,
		"name":   acct.Name,
		"type":   acct.Type,
		"nature": string(acct.Nature),
	}
	var result ledger.Account
	if err := c.do(ctx, http.MethodPost, "/api/v1/accounts", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetAccount(ctx context.Context, code string) (*ledger.Account, error) {
	var result ledger.Account
	if err := c.do(ctx, http.MethodGet, "/api/v1/accounts/"+url.PathEscape(code), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListAccounts(ctx context.Context, prefix string) ([]ledger.Account, error) {
	path := "/api/v1/accounts"
	if prefix != "" {
		path += "?prefix=" + url.QueryEscape(prefix)
	}
	var result []ledger.Account
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

type BalanceResponse struct {
	Code    string          `json:"code"`
	Balance decimal.Decimal `json:"balance"`
}

func (c *Client) AccountBalance(ctx context.Context, codeOrPrefix string) (*BalanceResponse, error) {
	var result BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/accounts/"+url.PathEscape(codeOrPrefix)+"/balance", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PostEntry(ctx context.Context, e *ledger.JournalEntry) (*ledger.JournalEntry, error) {
	lines := make([]map[string]any, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, map[string]any{
			"account_code": l.AccountCode,
			"debit":        l.Debit,
			"credit":       l.Credit,
		})
	}
	body := map[string]any{
		"description": e.Description,
		"lines":       lines,
	}
	if !e.Date.IsZero() {
		body["date"] = e.Date.Format("2006-01-02")
	}
	var result ledger.JournalEntry
	if err := c.do(ctx, http.MethodPost, "/api/v1/entries", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetEntry(ctx context.Context, id string) (*ledger.JournalEntry, error) {
	var result ledger.JournalEntry
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) TrialBalance(ctx context.Context) (*ledger.TrialBalance, error) {
	var result ledger.TrialBalance
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports/trial-balance", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) OpeningBalance(ctx context.Context) (*ledger.OpeningBalance, error) {
	var result ledger.OpeningBalance
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports/opening-balance", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) IncomeStatement(ctx context.Context) (*ledger.IncomeStatement, error) {
	var result ledger.IncomeStatement
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports/income-statement", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) BalanceSheet(ctx context.Context) (*ledger.BalanceSheet, error) {
	var result ledger.BalanceSheet
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports/balance-sheet", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateProduct(ctx context.Context, p *inventory.Product) (*inventory.Product, error) {
	var result inventory.Product
	if err := c.do(ctx, http.MethodPost, "/api/v1/products", p, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RecordPurchase(ctx context.Context, code string, date time.Time, qty int64, unitCost decimal.Decimal) (*inventory.Movement, error) {
	body := map[string]any{
		"date":      date.Format("2006-01-02"),
		"quantity":  qty,
		"unit_cost": unitCost,
	}
	var result inventory.Movement
	if err := c.do(ctx, http.MethodPost, "/api/v1/products/"+url.PathEscape(code)+"/purchases", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RecordSale(ctx context.Context, code string, date time.Time, qty int64) (*inventory.Movement, error) {
	body := map[string]any{
		"date":     date.Format("2006-01-02"),
		"quantity": qty,
	}
	var result inventory.Movement
	if err := c.do(ctx, http.MethodPost, "/api/v1/products/"+url.PathEscape(code)+"/sales", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Kardex(ctx context.Context, code string, method inventory.Method) (*inventory.Kardex, error) {
	path := "/api/v1/products/" + url.PathEscape(code) + "/kardex?method=" + url.QueryEscape(string(method))
	var result inventory.Kardex
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SetCompany(ctx context.Context, company *ledger.Company) error {
	return c.do(ctx, http.MethodPut, "/api/v1/company", company, nil)
}

func (c *Client) GetCompany(ctx context.Context) (*ledger.Company, error) {
	var result ledger.Company
	if err := c.do(ctx, http.MethodGet, "/api/v1/company", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{Status: resp.StatusCode, Message: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
