// Package httpapi exposes the order service over HTTP: order intake with
// validation, and per-order lookup. All money fields are rendered as
// 2-decimal strings.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dikshith-shetty/ome/pkg/logging"
	"github.com/dikshith-shetty/ome/pkg/oms"
	"github.com/dikshith-shetty/ome/pkg/oms/model"
)

type Config struct {
	Addr   string   `yaml:"addr"`
	Assets []string `yaml:"assets"`
}

type Server struct {
	svc    *oms.OrderService
	assets []string
	http   *http.Server
}

func NewServer(cfg *Config, svc *oms.OrderService) *Server {
	s := &Server{
		svc:    svc,
		assets: cfg.Assets,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", s.withRequestID(s.handleCreateOrder))
	mux.HandleFunc("GET /orders/{orderId}", s.withRequestID(s.handleGetOrder))

	s.http = &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the routing for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r.WithContext(logging.WithRequestID(r.Context())))
	}
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	add, fieldErrs := req.validate(s.assets)
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrs)
		return
	}

	detail, err := s.svc.CreateOrder(r.Context(), add)
	if err != nil {
		logging.FromContext(r.Context()).Error("create order failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal server error occurred"})
		return
	}

	writeJSON(w, http.StatusOK, newOrderResponse(detail))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "orderId must be an integer"})
		return
	}

	detail, err := s.svc.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, oms.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found: " + strconv.FormatInt(id, 10)})
			return
		}
		logging.FromContext(r.Context()).Error("get order failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal server error occurred"})
		return
	}

	writeJSON(w, http.StatusOK, newOrderResponse(detail))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type tradeView struct {
	OrderID int64  `json:"orderId"`
	Amount  string `json:"amount"`
	Price   string `json:"price"`
}

type orderResponse struct {
	ID            int64       `json:"id"`
	Timestamp     time.Time   `json:"timestamp"`
	Asset         string      `json:"asset"`
	Price         string      `json:"price"`
	Amount        string      `json:"amount"`
	PendingAmount string      `json:"pendingAmount"`
	Direction     string      `json:"direction"`
	Status        string      `json:"status"`
	Trades        []tradeView `json:"trades"`
}

func newOrderResponse(d *model.OrderDetail) orderResponse {
	trades := make([]tradeView, 0, len(d.Trades))
	for _, f := range d.Trades {
		trades = append(trades, tradeView{
			OrderID: f.OrderID,
			Amount:  f.Amount.StringFixed(2),
			Price:   f.Price.StringFixed(2),
		})
	}
	return orderResponse{
		ID:            d.Order.ID,
		Timestamp:     d.Order.CreatedAt,
		Asset:         d.Order.Asset,
		Price:         d.Order.Price.StringFixed(2),
		Amount:        d.Order.Amount.StringFixed(2),
		PendingAmount: d.Order.Pending.StringFixed(2),
		Direction:     string(d.Order.Side),
		Status:        string(d.Order.Status),
		Trades:        trades,
	}
}

func assetAllowed(assets []string, asset string) bool {
	for _, a := range assets {
		if strings.EqualFold(a, asset) {
			return true
		}
	}
	return false
}
