package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/pkg/response"
)

func (h *LedgerHandler) CreateCollectionMessage(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, ok := pathID(w, mux.Vars(r)["loanId"])
	if !ok {
		return
	}

	// Body is optional; an empty message gets the default reminder text.
	var request domain.CreateCollectionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&request)
	}

	message, err := h.service.CreateCollectionMessage(r.Context(), owner, loanID, request.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, message)
}

func (h *LedgerHandler) ListCollectionMessages(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	messages, err := h.service.ListCollectionMessages(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, messages)
}
