package handler

import (
	"errors"
	"net/http"

	"cbrbot/internal/domain"
	"cbrbot/internal/rate"

	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Result string `json:"result"`
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := rate.NormalizeCode(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := rate.NormalizeCode(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "to: "+err.Error())
		return
	}
	amount, err := rate.ParseAmount(query.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Convert(r.Context(), from, to, amount)
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, "rate not found")
			return
		}
		msg := "ups, couldn't convert this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Convert", "from": from, "to": to}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		From:   from,
		To:     to,
		Amount: amount.String(),
		Result: result.StringFixed(5),
	})
}
