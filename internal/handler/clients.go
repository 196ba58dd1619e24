package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/empresta/ledger-engine/internal/domain"
	customError "github.com/empresta/ledger-engine/pkg/errors"
	"github.com/empresta/ledger-engine/pkg/response"
)

func (h *LedgerHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var request domain.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		writeError(w, customError.WrapValidationFailed(err))
		return
	}

	client, err := h.service.CreateClient(r.Context(), owner, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, client)
}

func (h *LedgerHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	clients, err := h.service.ListClients(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, clients)
}

func (h *LedgerHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	clientID, ok := pathID(w, mux.Vars(r)["clientId"])
	if !ok {
		return
	}

	client, err := h.service.GetClient(r.Context(), owner, clientID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, client)
}

func (h *LedgerHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	clientID, ok := pathID(w, mux.Vars(r)["clientId"])
	if !ok {
		return
	}

	var request domain.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		writeError(w, customError.WrapValidationFailed(err))
		return
	}

	client, err := h.service.UpdateClient(r.Context(), owner, clientID, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, client)
}

func (h *LedgerHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	clientID, ok := pathID(w, mux.Vars(r)["clientId"])
	if !ok {
		return
	}

	if err := h.service.DeleteClient(r.Context(), owner, clientID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *LedgerHandler) GetClientReport(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	clientID, ok := pathID(w, mux.Vars(r)["clientId"])
	if !ok {
		return
	}

	report, err := h.service.GetClientReport(r.Context(), owner, clientID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, report)
}
