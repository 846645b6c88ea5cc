package srv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"qrgen.exe.dev/db/dbgen"
)

const generateTimeout = 10 * time.Second

type generateRequest struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	QrCodeUrl       string `json:"qrCodeUrl"`
	Owner           string `json:"owner"`
	ConversionsUsed int64  `json:"conversionsUsed"`
	Cached          bool   `json:"cached"`
}

// handleGenerate is the conversion endpoint. The flow is strictly
// linear: extract credentials, decode the key, resolve the account,
// then either serve the cached image or render, persist and respond.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Bearer-Token")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	creds := extractCredentials(r)
	if creds == nil {
		jsonError(w, "Missing ApiKey or Bearer token", http.StatusUnauthorized)
		return
	}

	owner := DecodeAPIKey(creds.APIKey)
	if owner == "" {
		jsonError(w, "Invalid API key", http.StatusUnauthorized)
		return
	}

	if !strings.HasPrefix(creds.BearerToken, bearerTokenPrefix) {
		jsonError(w, "Invalid bearer token", http.StatusUnauthorized)
		return
	}

	q := dbgen.New(s.DB)
	account, err := q.GetAccountByCredentials(ctx, dbgen.GetAccountByCredentialsParams{
		ApiKey:      creds.APIKey,
		BearerToken: creds.BearerToken,
	})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Msg("failed to fetch account by credentials")
		}
		// Never disclose which half of the pair was wrong.
		jsonError(w, "Invalid API credentials", http.StatusUnauthorized)
		return
	}

	var req generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		jsonError(w, "A non-empty text field is required", http.StatusBadRequest)
		return
	}
	text := strings.TrimSpace(req.Text)

	if msg := s.maintenanceMessage(r); msg != "" {
		jsonError(w, msg, http.StatusServiceUnavailable)
		return
	}

	// Cache hit: same account, same exact text. No new row, no counter
	// change.
	existing, err := q.GetLatestConversion(ctx, dbgen.GetLatestConversionParams{
		AccountID: account.ID,
		Text:      text,
	})
	if err == nil {
		writeJSON(w, http.StatusOK, generateResponse{
			Status:          "success",
			Message:         "QR code retrieved from cache",
			QrCodeUrl:       existing.QrCodeUrl,
			Owner:           owner,
			ConversionsUsed: account.ConversionsUsed,
			Cached:          true,
		})
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Str("account", account.ID).Msg("conversion cache lookup failed")
		jsonError(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	if limit, capped := s.planLimit(ctx, account.Plan); capped && account.ConversionsUsed >= limit {
		jsonError(w, "Conversion limit reached", http.StatusForbidden)
		return
	}

	qrCodeURL, err := renderQRCode(text)
	if err != nil {
		log.Error().Err(err).Str("account", account.ID).Int("textLen", len(text)).Msg("qr render failed")
		jsonError(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	used, err := s.recordConversion(ctx, account.ID, text, qrCodeURL, classifyText(text))
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race against an identical concurrent request; the
			// winner's row is authoritative, answer as a cache hit.
			if winner, lookupErr := q.GetLatestConversion(ctx, dbgen.GetLatestConversionParams{
				AccountID: account.ID,
				Text:      text,
			}); lookupErr == nil {
				writeJSON(w, http.StatusOK, generateResponse{
					Status:          "success",
					Message:         "QR code retrieved from cache",
					QrCodeUrl:       winner.QrCodeUrl,
					Owner:           owner,
					ConversionsUsed: account.ConversionsUsed,
					Cached:          true,
				})
				return
			}
		}
		log.Error().Err(err).Str("account", account.ID).Msg("failed to persist conversion")
		jsonError(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Status:          "success",
		Message:         "QR code generated",
		QrCodeUrl:       qrCodeURL,
		Owner:           owner,
		ConversionsUsed: used,
		Cached:          false,
	})
}

// recordConversion inserts the history row and bumps the usage counter
// in one transaction. Either both land or neither does.
func (s *Server) recordConversion(ctx context.Context, accountID, text, qrCodeURL, conversionType string) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin conversion tx: %w", err)
	}
	defer tx.Rollback()

	q := dbgen.New(s.DB).WithTx(tx)
	if _, err := q.InsertConversion(ctx, dbgen.InsertConversionParams{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Text:      text,
		QrCodeUrl: qrCodeURL,
		Type:      conversionType,
	}); err != nil {
		return 0, fmt.Errorf("insert conversion: %w", err)
	}
	used, err := q.IncrementConversionsUsed(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("increment usage: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit conversion tx: %w", err)
	}
	return used, nil
}

// planLimit resolves the monthly cap for a plan. The second return is
// false for unlimited plans. Free accounts without a plans row fall
// back to the app-config default.
func (s *Server) planLimit(ctx context.Context, planID string) (int64, bool) {
	q := dbgen.New(s.DB)
	plan, err := q.GetPlan(ctx, planID)
	if err == nil {
		if plan.MonthlyConversions == nil {
			return 0, false
		}
		return *plan.MonthlyConversions, true
	}
	if planID == "free" {
		if cfg, cfgErr := q.GetAppConfig(ctx); cfgErr == nil {
			return cfg.DefaultFreePlanLimit, true
		}
	}
	log.Warn().Str("plan", planID).Msg("no limit found for plan, treating as unlimited")
	return 0, false
}
