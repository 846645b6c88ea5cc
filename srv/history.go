package srv

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"qrgen.exe.dev/db/dbgen"
)

type historyEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	QrCodeUrl string    `json:"qrCodeUrl"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	account, ok := s.resolveAccount(r)
	if !ok {
		jsonError(w, "Invalid API credentials", http.StatusUnauthorized)
		return
	}
	conversions, err := dbgen.New(s.DB).ListConversionsByAccount(r.Context(), account.ID)
	if err != nil {
		log.Error().Err(err).Str("account", account.ID).Msg("failed to list conversions")
		jsonError(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	entries := make([]historyEntry, 0, len(conversions))
	for _, c := range conversions {
		entries = append(entries, historyEntry{
			ID:        c.ID,
			Text:      c.Text,
			QrCodeUrl: c.QrCodeUrl,
			Type:      c.Type,
			Timestamp: c.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	account, ok := s.resolveAccount(r)
	if !ok {
		jsonError(w, "Invalid API credentials", http.StatusUnauthorized)
		return
	}
	id := r.PathValue("id")
	q := dbgen.New(s.DB)
	if _, err := q.GetConversion(r.Context(), dbgen.GetConversionParams{ID: id, AccountID: account.ID}); err != nil {
		jsonError(w, "Conversion not found", http.StatusNotFound)
		return
	}
	if err := q.DeleteConversion(r.Context(), dbgen.DeleteConversionParams{ID: id, AccountID: account.ID}); err != nil {
		log.Error().Err(err).Str("conversion", id).Msg("failed to delete conversion")
		jsonError(w, "Failed to delete conversion", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleDownloadConversion serves a stored conversion as a raw PNG so
// clients can save the image without unpacking the data URL themselves.
func (s *Server) handleDownloadConversion(w http.ResponseWriter, r *http.Request) {
	account, ok := s.resolveAccount(r)
	if !ok {
		jsonError(w, "Invalid API credentials", http.StatusUnauthorized)
		return
	}
	id := r.PathValue("id")
	conversion, err := dbgen.New(s.DB).GetConversion(r.Context(), dbgen.GetConversionParams{
		ID:        id,
		AccountID: account.ID,
	})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Str("conversion", id).Msg("failed to fetch conversion")
		}
		jsonError(w, "Conversion not found", http.StatusNotFound)
		return
	}
	contentType, raw, err := decodeDataURL(conversion.QrCodeUrl)
	if err != nil {
		log.Error().Err(err).Str("conversion", id).Msg("stored image is not a valid data URL")
		jsonError(w, "Failed to decode stored image", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="qr-code.png"`)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Write(raw)
}
