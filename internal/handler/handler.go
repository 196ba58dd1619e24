package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/empresta/ledger-engine/internal/service"
	customError "github.com/empresta/ledger-engine/pkg/errors"
	"github.com/empresta/ledger-engine/pkg/response"
)

// OwnerHeader carries the authenticated lender's ID. Authentication itself
// lives in front of this service; the header stands in for the verified
// subject.
const OwnerHeader = "X-Owner-ID"

type LedgerHandler struct {
	service   *service.LedgerService
	validator *validator.Validate
}

func NewLedgerHandler(svc *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		service:   svc,
		validator: newValidator(),
	}
}

// newValidator registers decimal.Decimal so numeric tags (gt, gte) apply to
// money fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ownerID extracts and validates the owner header. Writes the error
// response itself and reports ok=false when the header is unusable.
func ownerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get(OwnerHeader)
	if raw == "" {
		response.Unauthorized(w, "missing "+OwnerHeader+" header")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		response.Unauthorized(w, "invalid "+OwnerHeader+" header")
		return uuid.Nil, false
	}

	return id, true
}

// pathID parses a UUID path variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "invalid id in path", err)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps business error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		switch businessErr.Code {
		case customError.ErrCodeClientNotFound,
			customError.ErrCodeLoanNotFound,
			customError.ErrCodeInstallmentNotFound,
			customError.ErrCodeSignatureNotFound:
			response.NotFound(w, businessErr.Message)
		case customError.ErrCodeValidationFailed,
			customError.ErrCodeInvalidLoanAmount:
			response.BadRequest(w, businessErr.Message, businessErr.Err)
		case customError.ErrCodeLoanAlreadyPaid:
			response.Conflict(w, businessErr.Message, businessErr.Err)
		default:
			response.InternalServerError(w, businessErr.Message, businessErr.Err)
		}
		return
	}

	switch {
	case errors.Is(err, customError.ErrInvalidInstallmentCount),
		errors.Is(err, customError.ErrNotInstallmentLoan):
		response.BadRequest(w, err.Error(), nil)
	default:
		response.InternalServerError(w, "unexpected error", err)
	}
}
