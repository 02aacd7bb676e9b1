package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const previewWriteTimeout = 10 * time.Second

// previewMessage is sent to preview sockets on every history change.
type previewMessage struct {
	Type     string `json:"type"`
	Code     string `json:"code"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
}

// handlePreview streams a session's current snapshot over a websocket.
// The session must already exist; it is named by the "session" query
// parameter or the session header.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		id = r.Header.Get(SessionHeader)
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.LogError(err)
		return
	}
	defer conn.Close()

	updates, cancel := sess.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(r.Context())
	defer stop()

	// The page never sends anything; reading only detects the close.
	go func() {
		defer stop()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() error {
		view := historyView(sess, false)
		_ = conn.SetWriteDeadline(time.Now().Add(previewWriteTimeout))
		return conn.WriteJSON(previewMessage{
			Type:     "snapshot",
			Code:     view.Code,
			Position: view.Position,
			Length:   view.Length,
		})
	}

	if err := send(); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(time.Second))
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			if err := send(); err != nil {
				return
			}
		}
	}
}
