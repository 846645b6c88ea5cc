package srv

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"qrgen.exe.dev/db"
	"qrgen.exe.dev/db/dbgen"
)

type Server struct {
	DB                  *sql.DB
	Hostname            string
	AdminPassword       string
	StripeWebhookSecret string
	adminTokenHash      [32]byte
}

func New(dbPath, hostname, adminPassword, stripeWebhookSecret string) (*Server, error) {
	srv := &Server{
		Hostname:            hostname,
		AdminPassword:       adminPassword,
		StripeWebhookSecret: stripeWebhookSecret,
	}
	// Generate a stable session token from the password
	srv.adminTokenHash = sha256.Sum256([]byte("qrgen-admin-" + adminPassword))
	if err := srv.setUpDatabase(dbPath); err != nil {
		return nil, err
	}
	return srv, nil
}

func (s *Server) setUpDatabase(dbPath string) error {
	wdb, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	s.DB = wdb
	if err := db.RunMigrations(wdb); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (s *Server) adminToken() string {
	return hex.EncodeToString(s.adminTokenHash[:16])
}

func (s *Server) isAdminAuthed(r *http.Request) bool {
	if s.AdminPassword == "" {
		return true // no password set, open access
	}
	c, err := r.Cookie("admin_token")
	if err != nil {
		return false
	}
	return c.Value == s.adminToken()
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.isAdminAuthed(r) {
			jsonError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")
	if s.AdminPassword == "" || password != s.AdminPassword {
		jsonError(w, "Wrong password", http.StatusUnauthorized)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "admin_token",
		Value:    s.adminToken(),
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   "admin_token",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// maintenanceMessage returns the configured maintenance notice when the
// app is in maintenance mode, or "" when it is serving normally.
func (s *Server) maintenanceMessage(r *http.Request) string {
	cfg, err := dbgen.New(s.DB).GetAppConfig(r.Context())
	if err != nil || cfg.IsMaintenance == 0 {
		return ""
	}
	if cfg.MaintenanceMessage != nil && *cfg.MaintenanceMessage != "" {
		return *cfg.MaintenanceMessage
	}
	return "Service is under maintenance, please try again later"
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/pricing", s.handlePricing)
	mux.HandleFunc("POST /api/signup", s.handleSignup)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("GET /api/me", s.handleMe)
	mux.HandleFunc("POST /api/rotate-token", s.handleRotateToken)
	mux.HandleFunc("GET /api/history", s.handleListHistory)
	mux.HandleFunc("DELETE /api/history/{id}", s.handleDeleteHistory)
	mux.HandleFunc("GET /api/conversions/{id}/download", s.handleDownloadConversion)
	mux.HandleFunc("POST /api/stripe/webhook", s.handleStripeWebhook)
	mux.HandleFunc("POST /admin/login", s.handleAdminLogin)
	mux.HandleFunc("GET /admin/logout", s.handleAdminLogout)
	mux.HandleFunc("GET /api/admin/accounts", s.requireAdmin(s.handleListAccounts))
	mux.HandleFunc("POST /api/admin/accounts/{id}/plan", s.requireAdmin(s.handleSetAccountPlan))
	mux.HandleFunc("POST /api/admin/accounts/{id}/active", s.requireAdmin(s.handleSetAccountActive))
	mux.HandleFunc("GET /api/admin/stats", s.requireAdmin(s.handleAdminStats))
	mux.HandleFunc("GET /api/admin/config", s.requireAdmin(s.handleGetAppConfig))
	mux.HandleFunc("POST /api/admin/config", s.requireAdmin(s.handleUpdateAppConfig))
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /robots.txt", s.handleRobotsTxt)
	return mux
}

func (s *Server) Serve(addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	log.Info().Str("addr", addr).Str("hostname", s.Hostname).Msg("starting server")
	return httpSrv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]any{"status": "error", "message": msg})
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure, used to detect the losing side of a concurrent duplicate write.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
