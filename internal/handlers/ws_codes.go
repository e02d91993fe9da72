// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the solve handler.
const (
	BadSubprotocolError = 3000 // Client connected with an unsupported subprotocol.
	InvalidScriptError  = 3001 // The submitted script failed to load.
)
