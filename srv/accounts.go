package srv

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"qrgen.exe.dev/db/dbgen"
)

const bcryptCost = 12

type accountProfile struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Plan            string     `json:"plan"`
	Role            string     `json:"role"`
	ConversionsUsed int64      `json:"conversionsUsed"`
	ApiKey          string     `json:"apiKey"`
	BearerToken     string     `json:"bearerToken"`
	PlanStartedAt   *time.Time `json:"planStartedAt"`
	PlanRenewsAt    *time.Time `json:"planRenewsAt"`
	IsActive        bool       `json:"isActive"`
}

func profileFromAccount(a dbgen.Account) accountProfile {
	return accountProfile{
		ID:              a.ID,
		Email:           a.Email,
		Name:            a.Name,
		Plan:            a.Plan,
		Role:            a.Role,
		ConversionsUsed: a.ConversionsUsed,
		ApiKey:          a.ApiKey,
		BearerToken:     a.BearerToken,
		PlanStartedAt:   a.PlanStartedAt,
		PlanRenewsAt:    a.PlanRenewsAt,
		IsActive:        a.IsActive != 0,
	}
}

// resolveAccount authenticates a request by its credential pair. It is
// the same chain the conversion endpoint runs, minus the body handling.
func (s *Server) resolveAccount(r *http.Request) (dbgen.Account, bool) {
	creds := extractCredentials(r)
	if creds == nil {
		return dbgen.Account{}, false
	}
	if DecodeAPIKey(creds.APIKey) == "" || !strings.HasPrefix(creds.BearerToken, bearerTokenPrefix) {
		return dbgen.Account{}, false
	}
	account, err := dbgen.New(s.DB).GetAccountByCredentials(r.Context(), dbgen.GetAccountByCredentialsParams{
		ApiKey:      creds.APIKey,
		BearerToken: creds.BearerToken,
	})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Msg("failed to fetch account by credentials")
		}
		return dbgen.Account{}, false
	}
	return account, true
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Plan     string `json:"plan"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailShape.MatchString(email) {
		jsonError(w, "A valid email is required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		jsonError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}
	plan := req.Plan
	if plan == "" {
		plan = "free"
	}

	q := dbgen.New(s.DB)
	cfg, err := q.GetAppConfig(r.Context())
	if err == nil {
		if cfg.IsMaintenance != 0 {
			jsonError(w, s.maintenanceMessage(r), http.StatusServiceUnavailable)
			return
		}
		if cfg.EnableUserRegistration == 0 {
			jsonError(w, "Registration is currently disabled", http.StatusForbidden)
			return
		}
	}
	if _, err := q.GetPlan(r.Context(), plan); err != nil {
		jsonError(w, "Unknown plan", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("password hash failed")
		jsonError(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	renews := now.AddDate(0, 1, 0)
	account, err := q.InsertAccount(r.Context(), dbgen.InsertAccountParams{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          strings.TrimSpace(req.Name),
		PasswordHash:  string(hash),
		Plan:          plan,
		ApiKey:        GenerateAPIKey(email),
		BearerToken:   GenerateBearerToken(),
		PlanStartedAt: &now,
		PlanRenewsAt:  &renews,
	})
	if err != nil {
		if isUniqueViolation(err) {
			jsonError(w, "An account with this email already exists", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("email", email).Msg("failed to insert account")
		jsonError(w, "Failed to create account", http.StatusInternalServerError)
		return
	}
	log.Info().Str("account", account.ID).Str("plan", plan).Msg("account created")
	writeJSON(w, http.StatusCreated, profileFromAccount(account))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	account, err := dbgen.New(s.DB).GetAccountByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Msg("failed to fetch account by email")
		}
		jsonError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		jsonError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if account.IsActive == 0 {
		jsonError(w, "Account is deactivated", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, profileFromAccount(account))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	account, ok := s.resolveAccount(r)
	if !ok {
		jsonError(w, "Invalid API credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, profileFromAccount(account))
}

func (s *Server) handleRotateToken(w http.ResponseWriter, r *http.Request) {
	account, ok := s.resolveAccount(r)
	if !ok {
		jsonError(w, "Invalid API credentials", http.StatusUnauthorized)
		return
	}
	token := GenerateBearerToken()
	if err := dbgen.New(s.DB).UpdateBearerToken(r.Context(), dbgen.UpdateBearerTokenParams{
		BearerToken: token,
		ID:          account.ID,
	}); err != nil {
		log.Error().Err(err).Str("account", account.ID).Msg("failed to rotate bearer token")
		jsonError(w, "Failed to rotate token", http.StatusInternalServerError)
		return
	}
	account.BearerToken = token
	writeJSON(w, http.StatusOK, profileFromAccount(account))
}
