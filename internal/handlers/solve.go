// internal/handlers/solve.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/joedrago/clue/internal/script"
)

// SolveHandler runs the script in the request body and responds with the final board.
// A script that fails to load gets a 422 naming the failing line.
func SolveHandler(srv *SolveServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body := http.MaxBytesReader(w, r.Body, srv.MaxScriptBytes)

		sess := srv.newSession()
		if err := sess.LoadScript("request", body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "script too large", http.StatusRequestEntityTooLarge)
				return
			}
			var located *script.Error
			if !errors.As(err, &located) {
				srv.Logger.WithError(err).Error("solve failed")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"session_id": sess.ID,
				"error":      newErrorResponse(err),
			})
			return
		}

		if err := sess.Finish(r.Context()); err != nil {
			srv.Logger.WithError(err).WithField("session", sess.ID).Warn("finish session")
		}
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}
