package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/empresta/ledger-engine/internal/domain"
	"github.com/empresta/ledger-engine/pkg/response"
)

func (h *LedgerHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	notifications, err := h.service.ListNotifications(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, notifications)
}

func (h *LedgerHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	notificationID, ok := pathID(w, mux.Vars(r)["notificationId"])
	if !ok {
		return
	}

	if err := h.service.MarkNotificationRead(r.Context(), owner, notificationID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

// RunSweep triggers the reminder sweep on demand, the same routine the
// scheduler binary runs on its cadence.
func (h *LedgerHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	if _, ok := ownerID(w, r); !ok {
		return
	}

	created, err := h.service.RunReminderSweep(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.SweepResponse{Created: created})
}
