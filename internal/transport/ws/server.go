package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"tinycolony.dev/internal/protocol"
	"tinycolony.dev/internal/sim/world"
)

const outQueue = 8

// Server bridges local viewers to the world loop: frames flow out, tool
// commands flow in.
type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(w *world.World, logger *log.Logger) *Server {
	s := &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	return s
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		viewerID, out := s.handshake(conn)
		if viewerID == "" {
			return
		}
		if s.log != nil {
			s.log.Printf("viewer %s connected from %s", viewerID, r.RemoteAddr)
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						_ = conn.Close()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			cmd, code := decodeCmd(msg)
			if code != "" {
				reject(out, cmd.ID, code)
				continue
			}
			select {
			case s.world.Inbox() <- world.CommandEnvelope{ViewerID: viewerID, Cmd: cmd}:
			case <-ctx.Done():
			}
		}

		// Cleanup.
		select {
		case s.world.Leave() <- viewerID:
		case <-time.After(time.Second):
		}
		if s.log != nil {
			s.log.Printf("viewer %s disconnected", viewerID)
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) (viewerID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", nil
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", nil
	}
	if hello.ViewerName == "" {
		hello.ViewerName = "viewer"
	}

	out = make(chan []byte, outQueue)
	respCh := make(chan world.JoinResponse, 1)
	s.world.Join() <- world.JoinRequest{Name: hello.ViewerName, Out: out, Resp: respCh}
	resp := <-respCh

	if err := writeJSON(conn, resp.Welcome); err != nil {
		s.world.Leave() <- resp.Welcome.ViewerID
		return "", nil
	}
	return resp.Welcome.ViewerID, out
}

// decodeCmd returns the parsed command, or a protocol error code when the
// message cannot be forwarded to the world.
func decodeCmd(msg []byte) (protocol.CmdMsg, string) {
	var cmd protocol.CmdMsg
	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeCmd {
		return cmd, protocol.ErrProtoBadRequest
	}
	if err := json.Unmarshal(msg, &cmd); err != nil {
		return cmd, protocol.ErrProtoBadRequest
	}
	if cmd.ProtocolVersion != protocol.Version {
		return cmd, protocol.ErrProtoVersion
	}
	if cmd.Tool == "" {
		return cmd, protocol.ErrBadRequest
	}
	return cmd, ""
}

func reject(out chan []byte, id, code string) {
	b, err := json.Marshal(protocol.ResultMsg{
		Type:            protocol.TypeResult,
		ProtocolVersion: protocol.Version,
		ResultFor:       id,
		OK:              false,
		Code:            code,
	})
	if err != nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
