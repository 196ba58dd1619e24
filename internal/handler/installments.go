package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/pkg/response"
)

func (h *LedgerHandler) GetInstallments(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	installments, err := h.service.GetInstallments(r.Context(), owner, loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.InstallmentsResponse{
		LoanID:       loanID,
		Installments: installments,
	})
}

func (h *LedgerHandler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	loanID, ok := pathID(w, vars["loanId"])
	if !ok {
		return
	}

	number, err := strconv.Atoi(vars["number"])
	if err != nil || number < 1 {
		response.BadRequest(w, "invalid installment number", err)
		return
	}

	installment, err := h.service.PayInstallment(r.Context(), owner, loanID, number)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, installment)
}
