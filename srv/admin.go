package srv

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"qrgen.exe.dev/db/dbgen"
)

type adminAccount struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Plan            string     `json:"plan"`
	Role            string     `json:"role"`
	ConversionsUsed int64      `json:"conversionsUsed"`
	PlanStartedAt   *time.Time `json:"planStartedAt"`
	PlanRenewsAt    *time.Time `json:"planRenewsAt"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := dbgen.New(s.DB).ListAccounts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list accounts")
		jsonError(w, "Failed to list accounts", http.StatusInternalServerError)
		return
	}
	out := make([]adminAccount, 0, len(accounts))
	for _, a := range accounts {
		// Credentials stay out of the admin listing.
		out = append(out, adminAccount{
			ID:              a.ID,
			Email:           a.Email,
			Name:            a.Name,
			Plan:            a.Plan,
			Role:            a.Role,
			ConversionsUsed: a.ConversionsUsed,
			PlanStartedAt:   a.PlanStartedAt,
			PlanRenewsAt:    a.PlanRenewsAt,
			IsActive:        a.IsActive != 0,
			CreatedAt:       a.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetAccountPlan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Plan == "" {
		jsonError(w, "A plan field is required", http.StatusBadRequest)
		return
	}
	q := dbgen.New(s.DB)
	if _, err := q.GetPlan(r.Context(), req.Plan); err != nil {
		jsonError(w, "Unknown plan", http.StatusBadRequest)
		return
	}
	if _, err := q.GetAccountByID(r.Context(), id); err != nil {
		jsonError(w, "Account not found", http.StatusNotFound)
		return
	}
	now := time.Now().UTC()
	renews := now.AddDate(0, 1, 0)
	if err := q.UpdateAccountPlan(r.Context(), dbgen.UpdateAccountPlanParams{
		Plan:          req.Plan,
		PlanStartedAt: &now,
		PlanRenewsAt:  &renews,
		ID:            id,
	}); err != nil {
		log.Error().Err(err).Str("account", id).Msg("failed to update plan")
		jsonError(w, "Failed to update plan", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSetAccountActive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "An active field is required", http.StatusBadRequest)
		return
	}
	q := dbgen.New(s.DB)
	if _, err := q.GetAccountByID(r.Context(), id); err != nil {
		jsonError(w, "Account not found", http.StatusNotFound)
		return
	}
	active := int64(0)
	if req.Active {
		active = 1
	}
	if err := q.SetAccountActive(r.Context(), dbgen.SetAccountActiveParams{IsActive: active, ID: id}); err != nil {
		log.Error().Err(err).Str("account", id).Msg("failed to set active flag")
		jsonError(w, "Failed to update account", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	q := dbgen.New(s.DB)
	totalAccounts, _ := q.CountAccounts(r.Context())
	totalConversions, _ := q.CountConversions(r.Context())
	todayConversions, _ := q.CountConversionsToday(r.Context())
	byType, _ := q.ConversionsByType(r.Context())

	typeCounts := map[string]int64{}
	for _, row := range byType {
		typeCounts[row.Type] = row.Count
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalAccounts":     totalAccounts,
		"totalConversions":  totalConversions,
		"todayConversions":  todayConversions,
		"conversionsByType": typeCounts,
	})
}

type appConfigPayload struct {
	IsMaintenance          bool    `json:"isMaintenance"`
	MaintenanceMessage     *string `json:"maintenanceMessage"`
	EnableUserRegistration bool    `json:"enableUserRegistration"`
	DefaultFreePlanLimit   int64   `json:"defaultFreePlanLimit"`
	ConversionResetPeriod  string  `json:"conversionResetPeriod"`
	SupportEmail           *string `json:"supportEmail"`
}

func (s *Server) handleGetAppConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := dbgen.New(s.DB).GetAppConfig(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load app config")
		jsonError(w, "Failed to load config", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, appConfigPayload{
		IsMaintenance:          cfg.IsMaintenance != 0,
		MaintenanceMessage:     cfg.MaintenanceMessage,
		EnableUserRegistration: cfg.EnableUserRegistration != 0,
		DefaultFreePlanLimit:   cfg.DefaultFreePlanLimit,
		ConversionResetPeriod:  cfg.ConversionResetPeriod,
		SupportEmail:           cfg.SupportEmail,
	})
}

func (s *Server) handleUpdateAppConfig(w http.ResponseWriter, r *http.Request) {
	var req appConfigPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	maintenance := int64(0)
	if req.IsMaintenance {
		maintenance = 1
	}
	registration := int64(0)
	if req.EnableUserRegistration {
		registration = 1
	}
	if err := dbgen.New(s.DB).UpdateAppConfig(r.Context(), dbgen.UpdateAppConfigParams{
		IsMaintenance:          maintenance,
		MaintenanceMessage:     req.MaintenanceMessage,
		EnableUserRegistration: registration,
		DefaultFreePlanLimit:   req.DefaultFreePlanLimit,
		ConversionResetPeriod:  req.ConversionResetPeriod,
		SupportEmail:           req.SupportEmail,
	}); err != nil {
		log.Error().Err(err).Msg("failed to update app config")
		jsonError(w, "Failed to update config", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
