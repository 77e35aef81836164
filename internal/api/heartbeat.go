package api

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsIdlePingInterval = 30 * time.Second
	// wsMaxConsecutivePings bounds how long a client can go without a real
	// status or search report before it is evicted. A search over Oware's
	// small state space settles in well under a second, so a client that
	// sees nothing but pings for this long is a dead tab, not a slow move.
	wsMaxConsecutivePings = 3
)

// errIdleClient is returned by writeWithHeartbeat when a client has gone
// wsMaxConsecutivePings pings without receiving any real message, so the
// caller can close the socket and free its slot in the hub.
var errIdleClient = errors.New("api: websocket client idle past ping budget")

// writeWithHeartbeat drains send onto conn, injecting an idle ping
// whenever nothing has been written for wsIdlePingInterval, following the
// teacher's own writeWSWithHeartbeat. Unlike the teacher's version it also
// evicts a client that never acknowledges real traffic by consuming
// nothing but pings, since a stalled Oware observer otherwise pins a
// permanent slot (and a channel buffer) in the hub.
func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	return writeWithHeartbeatInterval(conn, send, wsIdlePingInterval)
}

// writeWithHeartbeatInterval is writeWithHeartbeat with the ping interval
// broken out so tests can exercise the idle-eviction path without waiting
// on the real wsIdlePingInterval.
func writeWithHeartbeatInterval(conn *websocket.Conn, send <-chan []byte, pingInterval time.Duration) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	consecutivePings := 0
	ping := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
			consecutivePings = 0
		case <-ticker.C:
			if time.Since(lastWrite) < pingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
			consecutivePings++
			if consecutivePings >= wsMaxConsecutivePings {
				return errIdleClient
			}
		}
	}
}
