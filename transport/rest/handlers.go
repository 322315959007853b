package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

type sessionReader interface {
	Snapshot(ctx context.Context, id string) (*entity.Game, error)
}

type modeResponse struct {
	Mode               entity.Mode `json:"mode"`
	FadeDelayMS        int64       `json:"fade_delay_ms"`
	RemoveDelayMS      int64       `json:"remove_delay_ms"`
	MaxMovesWithoutWin int         `json:"max_moves_without_win"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionReader
}

func newHandlers(logger *slog.Logger, sessions sessionReader) *handlers {
	return &handlers{
		logger:   logger,
		sessions: sessions,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

// Modes - lists the selectable modes with their timing constants.
func (that *handlers) Modes(w http.ResponseWriter, _ *http.Request) {
	modes := make([]modeResponse, 0, len(entity.Modes))
	for _, cfg := range entity.Modes {
		modes = append(modes, modeResponse{
			Mode:               cfg.Mode,
			FadeDelayMS:        cfg.FadeDelay.Milliseconds(),
			RemoveDelayMS:      cfg.RemoveDelay.Milliseconds(),
			MaxMovesWithoutWin: cfg.MaxMovesWithoutWin,
		})
	}

	writeJSON(w, http.StatusOK, modes)
}

func (that *handlers) Session(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Session")

	id := chi.URLParam(r, "id")

	game, err := that.sessions.Snapshot(r.Context(), id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	if err != nil {
		log.Error("failed to get session snapshot", "sessionID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
