package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/empresta/ledger-engine/internal/domain"
	customError "github.com/empresta/ledger-engine/pkg/errors"
	"github.com/empresta/ledger-engine/pkg/response"
)

func (h *LedgerHandler) GetSignature(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	signature, err := h.service.GetSignature(r.Context(), owner, loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, signature)
}

func (h *LedgerHandler) PutSignature(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	var request domain.PutSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		writeError(w, customError.WrapValidationFailed(err))
		return
	}

	signature, err := h.service.PutSignature(r.Context(), owner, loanID, request.Image)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, signature)
}
