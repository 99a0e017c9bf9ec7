package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TriggerSyncResponse struct {
	ExecID string `json:"exec_id"`
}

// TriggerSync runs a feed sync inside the request and reports whether it landed.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	execID := uuid.NewString()
	if err := h.syncer.Sync(r.Context(), execID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "TriggerSync", "exec_id": execID}).Error("manual sync failed")
		writeError(w, http.StatusBadGateway, "rates sync failed")
		return
	}
	writeJSON(w, http.StatusAccepted, TriggerSyncResponse{ExecID: execID})
}
