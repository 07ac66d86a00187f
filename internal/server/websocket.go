package server

import (
	"sync"
	"sync/atomic"

	"github.com/gofiber/websocket/v2"
)

// gameSocket streams a game's state. The client sends moveRequest messages;
// every accepted move, from any client, is pushed as a stateDTO to all
// sockets watching the game. A rejected move is answered with an
// errorResponse on the sender's socket only. Deleting the game sends a
// close frame and ends the stream.
func (h *handlers) gameSocket(conn *websocket.Conn) {
	defer conn.Close()

	var writeMu sync.Mutex
	send := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	id := conn.Params("id")
	s, err := h.manager.Get(id)
	if err != nil {
		if err := send(errorResponse{Error: err.Error()}); err != nil {
			h.logf(2, "websocket %s: %v\n", id, err)
		}
		return
	}

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	if err := send(newStateDTO(s.Snapshot())); err != nil {
		h.logf(2, "websocket %s: %v\n", id, err)
		return
	}

	// leaving is set before our own unsubscribe, so a closed updates
	// channel with leaving unset means the game was deleted.
	var leaving atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		for snap := range updates {
			if err := send(newStateDTO(snap)); err != nil {
				return
			}
		}
		if leaving.Load() {
			return
		}
		h.logf(2, "websocket %s: game deleted, closing\n", id)
		writeMu.Lock()
		err := conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game deleted"))
		writeMu.Unlock()
		if err != nil {
			h.logf(2, "websocket %s: %v\n", id, err)
		}
		conn.Close() // Unblocks ReadJSON below
	}()

	for {
		var req moveRequest
		if err := conn.ReadJSON(&req); err != nil {
			break
		}
		from, to, promotion, err := req.parse()
		if err == nil {
			_, _, err = s.Move(from, to, promotion)
		}
		if err != nil {
			if send(errorResponse{Error: err.Error()}) != nil {
				break
			}
		}
	}

	leaving.Store(true)
	unsubscribe()
	<-done
}
