package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nimbusbank/account-transfer-service/internal/ledger"
	"github.com/nimbusbank/account-transfer-service/internal/models"
)

// Server exposes the transfer engine over HTTP. Request field validation
// (non-empty identifiers, presence of a balance) lives here; everything past
// decoding is the ledger's contract.
type Server struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

func New(l *ledger.Ledger, logger *zap.Logger) *Server {
	return &Server{ledger: l, logger: logger}
}

// Handler returns the routed HTTP handler for the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /v1/accounts/{accountId}", s.handleGetAccount)
	mux.HandleFunc("POST /v1/accounts/transfer", s.handleTransfer)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type createAccountRequest struct {
	AccountID string           `json:"accountId"`
	Balance   *decimal.Decimal `json:"balance"`
}

type accountResponse struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.AccountID) == "" {
		http.Error(w, "accountId is a mandatory field", http.StatusBadRequest)
		return
	}
	if req.Balance == nil {
		http.Error(w, "balance is a mandatory field", http.StatusBadRequest)
		return
	}
	if req.Balance.IsNegative() {
		http.Error(w, "balance must not be negative", http.StatusBadRequest)
		return
	}

	s.logger.Info("creating account", zap.String("account", req.AccountID))

	if err := s.ledger.CreateAccount(models.NewAccount(req.AccountID, *req.Balance)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("accountId")

	account := s.ledger.GetAccount(accountID)
	if account == nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accountResponse{
		AccountID: account.ID,
		Balance:   account.Balance(),
	})
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req models.Transfer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.FromAccountID) == "" || strings.TrimSpace(req.ToAccountID) == "" {
		http.Error(w, "accountFromId and accountToId are mandatory fields", http.StatusBadRequest)
		return
	}

	if err := s.ledger.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, req.Amount); err != nil {
		s.logger.Error("transfer failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}
