package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blackmichael/tweetfeed/internal/domain"
)

const (
	wsWriteWait = 10 * time.Second

	// Signal message types accepted from the rendering layer.
	signalSearch  = "search"
	signalScroll  = "scroll"
	signalCompose = "compose"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The rendering layer is served from elsewhere during development.
	CheckOrigin: func(*http.Request) bool { return true },
}

// signalMessage is an inbound UI event: a search keystroke, a scroll-bottom
// notification, or a composed post.
type signalMessage struct {
	Type string `json:"type"`
	Term string `json:"term,omitempty"`
	Text string `json:"text,omitempty"`
}

// feedMessage is the outbound display-sequence snapshot.
type feedMessage struct {
	Type    string           `json:"type"`
	Records []recordResponse `json:"records"`
}

// handleWebSocket serves the live UI channel: inbound signal messages drive
// the engine, and every display-sequence change is pushed back as a feed
// message. The current sequence is sent once on connect.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("websocket client connected", "remote", r.RemoteAddr)

	updates := s.engine.Subscribe()
	defer s.engine.Unsubscribe(updates)

	done := make(chan struct{})

	// Writer: push snapshots until the subscription or the reader ends.
	go func() {
		if err := writeSnapshot(conn, s.engine.Display()); err != nil {
			return
		}
		for {
			select {
			case snapshot, ok := <-updates:
				if !ok {
					return
				}
				if err := writeSnapshot(conn, snapshot); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Reader: dispatch signals until the client goes away.
	defer close(done)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read error", "error", err)
			}
			return
		}

		var sig signalMessage
		if err := json.Unmarshal(message, &sig); err != nil {
			s.logger.Warn("ignoring malformed signal", "error", err)
			continue
		}

		switch sig.Type {
		case signalSearch:
			s.engine.SetSearchTerm(sig.Term)
		case signalScroll:
			s.engine.ScrollBottom()
		case signalCompose:
			s.engine.Compose(sig.Text)
		default:
			s.logger.Warn("ignoring unknown signal", "type", sig.Type)
		}
	}
}

func writeSnapshot(conn *websocket.Conn, records []domain.Record) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(feedMessage{
		Type:    "feed",
		Records: toRecordResponses(records),
	})
}
