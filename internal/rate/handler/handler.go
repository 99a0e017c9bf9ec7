package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"cbrbot/internal/domain"

	"github.com/shopspring/decimal"
)

type RateQuerier interface {
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error)
	ListRates(ctx context.Context) (domain.RateListing, error)
}

type SyncRunner interface {
	Sync(ctx context.Context, execID string) error
}

type Handler struct {
	service RateQuerier
	syncer  SyncRunner
}

func NewRateHandler(service RateQuerier, syncer SyncRunner) *Handler {
	return &Handler{service: service, syncer: syncer}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
