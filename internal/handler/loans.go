package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/empresta/ledger-engine/internal/domain"
	customError "github.com/empresta/ledger-engine/pkg/errors"
	"github.com/empresta/ledger-engine/pkg/response"
)

func (h *LedgerHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		writeError(w, customError.WrapValidationFailed(err))
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), owner, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, loan)
}

func (h *LedgerHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	loans, err := h.service.ListLoans(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, loans)
}

func (h *LedgerHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	loan, err := h.service.GetLoan(r.Context(), owner, loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, loan)
}

func (h *LedgerHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	var request domain.UpdateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		writeError(w, customError.WrapValidationFailed(err))
		return
	}

	loan, err := h.service.UpdateLoan(r.Context(), owner, loanID, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, loan)
}

func (h *LedgerHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	if err := h.service.DeleteLoan(r.Context(), owner, loanID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *LedgerHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	var request domain.RegisterPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		writeError(w, customError.WrapValidationFailed(err))
		return
	}

	loan, err := h.service.RegisterPayment(r.Context(), owner, loanID, request.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, loan)
}

func (h *LedgerHandler) MarkLoanPaid(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	loan, err := h.service.MarkLoanPaid(r.Context(), owner, loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, loan)
}
