package srv

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	stripelib "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"qrgen.exe.dev/db/dbgen"
)

const webhookBodyLimit = 1024 * 1024 // 1 MiB

// planOrder ranks subscription tiers for upgrade checks.
var planOrder = []string{"free", "starter", "professional", "business", "enterprise"}

func planRank(plan string) int {
	return slices.Index(planOrder, plan)
}

// canUpgradeTo reports whether moving from current to target is a real
// upgrade. Unknown current plans may upgrade to anything known.
func canUpgradeTo(current, target string) bool {
	targetRank := planRank(target)
	if targetRank == -1 {
		return false
	}
	return targetRank > planRank(current)
}

type checkoutSession struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// handleStripeWebhook verifies the Stripe signature and applies plan
// changes. The gateway protocol itself stays opaque: only the event
// metadata written at checkout time is interpreted here.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if s.StripeWebhookSecret == "" {
		jsonError(w, "Webhook secret not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, webhookBodyLimit)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	event, err := webhook.ConstructEventWithOptions(payload, r.Header.Get("Stripe-Signature"), s.StripeWebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		jsonError(w, "Invalid Stripe signature", http.StatusBadRequest)
		return
	}

	if err := s.handleStripeEvent(r, &event); err != nil {
		log.Error().Err(err).Str("event", event.ID).Str("type", string(event.Type)).Msg("stripe webhook processing failed")
		jsonError(w, "Processing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"received": true})
}

func (s *Server) handleStripeEvent(r *http.Request, event *stripelib.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session checkoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return s.applyPlanChange(r, session.Metadata["account_id"], session.Metadata["plan"], true)

	case "customer.subscription.deleted":
		var sub struct {
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.applyPlanChange(r, sub.Metadata["account_id"], "free", false)

	default:
		log.Debug().Str("type", string(event.Type)).Msg("ignoring stripe event")
		return nil
	}
}

// applyPlanChange moves an account to plan, resetting the billing
// window. upgradeOnly guards the paid path so a replayed or stale
// checkout event can never downgrade anyone.
func (s *Server) applyPlanChange(r *http.Request, accountID, plan string, upgradeOnly bool) error {
	if accountID == "" || plan == "" {
		log.Warn().Str("account", accountID).Str("plan", plan).Msg("stripe event missing metadata, skipping")
		return nil
	}
	q := dbgen.New(s.DB)
	account, err := q.GetAccountByID(r.Context(), accountID)
	if err != nil {
		return err
	}
	if upgradeOnly && !canUpgradeTo(account.Plan, plan) {
		log.Warn().Str("account", accountID).Str("from", account.Plan).Str("to", plan).Msg("ignoring non-upgrade plan change")
		return nil
	}
	now := time.Now().UTC()
	renews := now.AddDate(0, 1, 0)
	if err := q.UpdateAccountPlan(r.Context(), dbgen.UpdateAccountPlanParams{
		Plan:          plan,
		PlanStartedAt: &now,
		PlanRenewsAt:  &renews,
		ID:            accountID,
	}); err != nil {
		return err
	}
	log.Info().Str("account", accountID).Str("from", account.Plan).Str("to", plan).Msg("plan changed")
	return nil
}
