package output

import (
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/GekkoQuest/fairview/internal/models"
)

// WebsocketWriter streams scan results as JSON to a remote proctoring
// dashboard.
type WebsocketWriter struct {
	conn *websocket.Conn
}

// compile-time interface check
var _ Writer = (*WebsocketWriter)(nil)

// NewWebsocketWriter dials the dashboard endpoint.
func NewWebsocketWriter(url string) (*WebsocketWriter, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &WebsocketWriter{conn: conn}, nil
}

// Write sends one scan result as a JSON message.
func (ww *WebsocketWriter) Write(result models.ScanResult) error {
	return ww.conn.WriteJSON(result)
}

// Close sends a close frame and tears down the connection.
func (ww *WebsocketWriter) Close() error {
	_ = ww.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return ww.conn.Close()
}
