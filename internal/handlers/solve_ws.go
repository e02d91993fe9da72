// internal/handlers/solve_ws.go
package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/joedrago/clue/internal/game"
	"github.com/joedrago/clue/internal/middleware"
	"github.com/joedrago/clue/internal/render"
	"github.com/joedrago/clue/internal/solver"
)

// StreamMessage is one frame sent to a WebSocket client.
type StreamMessage struct {
	Type     string         `json:"type"` // "event", "snapshot" or "error"
	Event    string         `json:"event,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Error    *ErrorResponse `json:"error,omitempty"`
}

// SolveWSHandler accepts one script as a text message and streams the journal back,
// one message per event, followed by the final snapshot.
func SolveWSHandler(srv *SolveServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"clue"},
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			srv.Logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "clue" {
			c.Close(BadSubprotocolError, "client must speak the clue subprotocol")
			return
		}
		middleware.LogWebSocketConnect(srv.Logger, r.RemoteAddr, r.URL.Path)
		c.SetReadLimit(srv.MaxScriptBytes)

		ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
		defer cancel()

		typ, data, err := c.Read(ctx)
		if err != nil {
			middleware.LogWebSocketDisconnect(srv.Logger, r.RemoteAddr, r.URL.Path, err)
			return
		}
		if typ != websocket.MessageText {
			c.Close(websocket.StatusUnsupportedData, "script must be sent as text")
			return
		}

		sess := srv.newSession()
		describe := render.New(io.Discard, render.Plain, sess.Solver)
		var writeErr error
		sess.Listen(func(ev solver.Event) {
			if writeErr != nil {
				return
			}
			writeErr = wsjson.Write(ctx, c, StreamMessage{
				Type:    "event",
				Event:   string(ev.Type),
				Subject: game.Subject(ev),
				Text:    describe.Describe(ev),
			})
		})

		loadErr := sess.LoadScript("request", bytes.NewReader(data))
		if writeErr != nil {
			middleware.LogWebSocketDisconnect(srv.Logger, r.RemoteAddr, r.URL.Path, writeErr)
			return
		}
		if loadErr != nil {
			wsjson.Write(ctx, c, StreamMessage{Type: "error", Error: newErrorResponse(loadErr)})
			c.Close(InvalidScriptError, "script failed to load")
			return
		}

		if err := sess.Finish(ctx); err != nil {
			srv.Logger.WithError(err).WithField("session", sess.ID).Warn("finish session")
		}
		snap := sess.Snapshot()
		if err := wsjson.Write(ctx, c, StreamMessage{Type: "snapshot", Snapshot: &snap}); err != nil {
			middleware.LogWebSocketDisconnect(srv.Logger, r.RemoteAddr, r.URL.Path, err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
		middleware.LogWebSocketDisconnect(srv.Logger, r.RemoteAddr, r.URL.Path, nil)
	}
}
