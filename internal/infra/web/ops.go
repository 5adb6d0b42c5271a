// File: internal/infra/web/ops.go
package web

import (
	"encoding/json"
	"net/http"
	"strings"
)

// handleOpsToken exchanges the shared ops secret for a short-lived JWT.
func (s *Server) handleOpsToken(w http.ResponseWriter, r *http.Request) {
	hdr := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(hdr), "bearer ") || !s.auth.VerifySecret(strings.TrimSpace(hdr[7:])) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	token, err := s.auth.Mint()
	if err != nil {
		s.log.Error().Err(err).Msg("mint ops token")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleDayBeforeReminders(w http.ResponseWriter, r *http.Request) {
	n, err := s.reminders.SendDayBeforeReminders(r.Context())
	s.writeProcessed(w, n, err)
}

func (s *Server) handleHourReminders(w http.ResponseWriter, r *http.Request) {
	n, err := s.reminders.SendHourReminders(r.Context())
	s.writeProcessed(w, n, err)
}

func (s *Server) handleAutoComplete(w http.ResponseWriter, r *http.Request) {
	n, err := s.bookings.AutoCompleteDue(r.Context())
	s.writeProcessed(w, n, err)
}

func (s *Server) writeProcessed(w http.ResponseWriter, n int, err error) {
	if err != nil {
		s.log.Error().Err(err).Msg("ops trigger failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"processed": n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
