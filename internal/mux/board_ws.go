package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"twocardpoker-server/pkg/leaderboard"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

func (m *Mux) getBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.board.Current())
	}
}

// getBoardWS pushes every new board to the client
// Messages from the client are ignored
func (m *Mux) getBoardWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		boards, cancel := m.board.Subscribe()
		log := logrus.WithField("remoteAddr", remoteAddr(r))
		log.Debug("board client connected")

		readDone := make(chan bool)
		go func() {
			m.webSocketReadLoop(conn, log)
			close(readDone)
		}()

		m.webSocketWriteLoop(conn, boards, readDone, log)
		cancel()
		_ = conn.Close()
		log.Debug("board client disconnected")
	}
}

func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, boards <-chan leaderboard.Board, readDone chan bool, log *logrus.Entry) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readDone:
			return
		case board, ok := <-boards:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))

				// wait for the close frame
				select {
				case <-readDone:
				case <-time.After(time.Second):
				}
				return
			}

			log.WithField("version", board.Version).Trace("sending board to client")

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(board); err != nil {
				log.WithError(err).Error("could not write board")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(conn *websocket.Conn, log *logrus.Entry) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("board client closed unexpectedly")
			}

			return
		}
	}
}
