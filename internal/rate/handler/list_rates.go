package handler

import (
	"errors"
	"net/http"

	"cbrbot/internal/domain"

	"github.com/sirupsen/logrus"
)

type RateItem struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

type ListRatesResponse struct {
	Date  string     `json:"date"`
	Rates []RateItem `json:"rates"`
}

// ListRates returns the cached publication date and every cached rate, sorted by code.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.ListRates(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, "rates are not loaded")
			return
		}
		msg := "ups, couldn't list rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ListRates"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := ListRatesResponse{Date: listing.Date, Rates: make([]RateItem, 0, len(listing.Rates))}
	for _, cr := range listing.Rates {
		res.Rates = append(res.Rates, RateItem{Code: cr.Code, Value: cr.Value})
	}
	writeJSON(w, http.StatusOK, res)
}
