package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"tinycolony.dev/internal/protocol"
	"tinycolony.dev/internal/sim/bootstrap"
	"tinycolony.dev/internal/sim/catalogs"
	"tinycolony.dev/internal/sim/tuning"
	"tinycolony.dev/internal/sim/world"
)

func startColony(t *testing.T) (*world.World, *httptest.Server, int, int) {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	cfg := tuning.Defaults()
	cfg.Seed = 7
	w, err := bootstrap.NewColony(cfg, cats)
	if err != nil {
		t.Fatalf("colony: %v", err)
	}

	// Pick a tree before the loop owns the world.
	tx, ty := -1, -1
	w.Grid().Each(func(tile *world.Tile) {
		if tx < 0 && tile.Object == world.ObjectTree {
			tx, ty = tile.X, tile.Y
		}
	})
	if tx < 0 {
		t.Fatalf("no tree generated")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()
	srv := httptest.NewServer(NewServer(w, nil).Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})
	return w, srv, tx, ty
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(typ string, raw []byte) bool) []byte {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(deadline)
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if match(base.Type, msg) {
			return msg
		}
	}
	t.Fatalf("no matching message before deadline")
	return nil
}

func TestServer_WelcomeFramesAndCommands(t *testing.T) {
	_, srv, tx, ty := startColony(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version, ViewerName: "test"}); err != nil {
		t.Fatalf("hello: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	var welcome protocol.WelcomeMsg
	if err := json.Unmarshal(msg, &welcome); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if welcome.Type != protocol.TypeWelcome || welcome.ViewerID == "" {
		t.Fatalf("unexpected first message: %s", msg)
	}
	if welcome.WorldParams.Width != 50 || len(welcome.Buildings) != 3 {
		t.Fatalf("welcome params: %+v buildings=%d", welcome.WorldParams, len(welcome.Buildings))
	}

	raw := readUntil(t, conn, func(typ string, _ []byte) bool { return typ == protocol.TypeFrame })
	var frame protocol.FrameMsg
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("frame: %v", err)
	}
	if len(frame.Pawns) != 3 {
		t.Fatalf("frame pawns=%d", len(frame.Pawns))
	}

	cmd := protocol.CmdMsg{Type: protocol.TypeCmd, ProtocolVersion: protocol.Version, ID: "c1", Tool: protocol.ToolChop, X: tx, Y: ty}
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("cmd: %v", err)
	}
	raw = readUntil(t, conn, func(typ string, b []byte) bool {
		return typ == protocol.TypeResult && strings.Contains(string(b), `"c1"`)
	})
	var res protocol.ResultMsg
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatalf("result: %v", err)
	}
	if !res.OK {
		t.Fatalf("chop rejected: %+v", res)
	}
}

func TestServer_RejectsBadCommands(t *testing.T) {
	_, srv, _, _ := startColony(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version}); err != nil {
		t.Fatalf("hello: %v", err)
	}
	readUntil(t, conn, func(typ string, _ []byte) bool { return typ == protocol.TypeWelcome })

	if err := conn.WriteJSON(protocol.CmdMsg{Type: protocol.TypeCmd, ProtocolVersion: "0.1", ID: "old", Tool: protocol.ToolSelect}); err != nil {
		t.Fatalf("cmd: %v", err)
	}
	raw := readUntil(t, conn, func(typ string, b []byte) bool {
		return typ == protocol.TypeResult && strings.Contains(string(b), `"old"`)
	})
	var res protocol.ResultMsg
	_ = json.Unmarshal(raw, &res)
	if res.OK || res.Code != protocol.ErrProtoVersion {
		t.Fatalf("expected %s, got %+v", protocol.ErrProtoVersion, res)
	}
}

func TestServer_ClosesWithoutHello(t *testing.T) {
	_, srv, _, _ := startColony(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(protocol.CmdMsg{Type: protocol.TypeCmd, ProtocolVersion: protocol.Version, ID: "x", Tool: protocol.ToolSelect}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy close, got %v", err)
	}
}
