package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ampuero/contable/internal/inventory"
	"github.com/ampuero/contable/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	var imbalanced *ledger.ImbalancedEntryError
	var unknownAccount *ledger.UnknownAccountError
	var insufficient *inventory.InsufficientStockError

	switch {
	// Typed validation failures outrank the sentinels they wrap.
	case errors.As(err, &imbalanced),
		errors.As(err, &unknownAccount),
		errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrEntryNotFound),
		errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, ledger.ErrCompanyNotSet):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateAccount),
		errors.Is(err, inventory.ErrDuplicateProduct):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrEmptyEntry),
		errors.Is(err, ledger.ErrEmptyDescription),
		errors.Is(err, ledger.ErrNegativeAmount),
		errors.Is(err, ledger.ErrAmountPrecision),
		errors.Is(err, ledger.ErrBothSidesSet),
		errors.Is(err, ledger.ErrInvalidAccount),
		errors.Is(err, ledger.ErrInvalidAccountCode),
		errors.Is(err, ledger.ErrInvalidNature),
		errors.Is(err, ledger.ErrAccountReferenced),
		errors.Is(err, ledger.ErrInvalidCompany),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidProduct),
		errors.Is(err, inventory.ErrNegativeCost):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
