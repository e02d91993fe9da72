// internal/handlers/server.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joedrago/clue/internal/game"
	"github.com/joedrago/clue/internal/script"
	"github.com/sirupsen/logrus"
)

// DefaultMaxScriptBytes caps the size of a submitted script.
const DefaultMaxScriptBytes = 1 << 20

// SolveServer holds what every solve request shares.
type SolveServer struct {
	Logger         logrus.FieldLogger
	MaxPlayers     int
	MaxScriptBytes int64
	Publisher      game.Publisher // optional
	Store          game.Store     // optional
}

func NewSolveServer(logger logrus.FieldLogger) *SolveServer {
	return &SolveServer{Logger: logger, MaxScriptBytes: DefaultMaxScriptBytes}
}

func (s *SolveServer) newSession() *game.Session {
	return game.NewSession(game.Options{
		MaxPlayers: s.MaxPlayers,
		Logger:     s.Logger,
		Publisher:  s.Publisher,
		Store:      s.Store,
	})
}

// ErrorResponse describes a failed solve.
type ErrorResponse struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

func newErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{Message: err.Error()}
	var located *script.Error
	if errors.As(err, &located) {
		resp.Message = located.Err.Error()
		resp.File = located.File
		resp.Line = located.Line
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
