package srv

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"qrgen.exe.dev/db/dbgen"
)

type pricingPlan struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	PriceMonthlyCents  int64    `json:"price_monthly_cents"`
	MonthlyConversions *int64   `json:"monthly_conversions"`
	Features           []string `json:"features"`
}

// handlePricing lists the active plans, cheapest first. Public and
// CORS-open so the marketing pages can read it directly.
func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodGet {
		jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	plans, err := dbgen.New(s.DB).ListActivePlans(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list plans")
		jsonError(w, "Failed to load plans", http.StatusInternalServerError)
		return
	}
	out := make([]pricingPlan, 0, len(plans))
	for _, p := range plans {
		var features []string
		json.Unmarshal([]byte(p.Features), &features)
		out = append(out, pricingPlan{
			ID:                 p.ID,
			Name:               p.Name,
			PriceMonthlyCents:  p.PriceMonthlyCents,
			MonthlyConversions: p.MonthlyConversions,
			Features:           features,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
