package handler

import (
	"net/http"

	"github.com/empresta/ledger-engine/pkg/response"
)

func (h *LedgerHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, dashboard)
}
