package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsError struct {
	Error string `json:"error"`
}

// handleTranslateWS serves interactive clients over a websocket. Every
// client message is a translation request and gets exactly one reply, so a
// typing user does not pay an HTTP round trip per keystroke.
func (r *Router) handleTranslateWS(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Printf("ws: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Client closed or the connection broke.
			return
		}

		var body translateRequest
		if err := json.Unmarshal(data, &body); err != nil {
			if err := conn.WriteJSON(wsError{Error: "invalid message"}); err != nil {
				return
			}
			continue
		}

		resp, _, err := r.translate(body, "ws")
		if err != nil {
			if err := conn.WriteJSON(wsError{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}
