package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/scpsl-tools/slbind/internal/models"
)

// handleCommand processes one command callback from the bot platform.
// The reply is always HTTP 200 with a JSON body; error replies for the
// end user (usage help, denials) are replies, not HTTP errors. HTTP
// error codes are reserved for transport problems.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	ip := GetRealIP(r, s.trustProxy)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req models.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().
			Err(err).
			Str("ip", ip).
			Msg("Invalid JSON in command callback")

		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if req.Command == "" || req.GroupOpenID == "" {
		log.Debug().
			Str("ip", ip).
			Str("command", req.Command).
			Msg("Command callback missing required fields")

		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	reply := s.router.Dispatch(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.CommandResponse{Reply: reply})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "ok")
}
