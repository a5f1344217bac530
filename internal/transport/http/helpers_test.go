package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/strangerchat-server/internal/config"
	"github.com/vovakirdan/strangerchat-server/internal/core"
	"github.com/vovakirdan/strangerchat-server/internal/proto"
	"github.com/vovakirdan/strangerchat-server/internal/store"
)

func startTestServer(t *testing.T, sessions store.SessionStore) *httptest.Server {
	t.Helper()

	hub := core.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	disabledLogger := zerolog.New(nil)
	cfg := config.Default()

	server := NewServer(hub, sessions, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	t.Cleanup(cancel)

	return ts
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, in proto.Inbound) {
	t.Helper()

	if err := wsjson.Write(ctx, conn, in); err != nil {
		t.Fatalf("write %s: %v", in.Type, err)
	}
}

// readUntil skips frames until one of the given type (and text, if non-empty) arrives.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, typ, text string) proto.Frame {
	t.Helper()

	for {
		var frame proto.Frame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			t.Fatalf("waiting for %s %q: %v", typ, text, err)
		}
		if frame.Type == typ && (text == "" || frame.Message == text) {
			return frame
		}
	}
}

// pairClients names a and b so that a waits first and b joins it.
func pairClients(t *testing.T, ctx context.Context, a, b *websocket.Conn, nameA, nameB string) {
	t.Helper()

	send(t, ctx, a, proto.Inbound{Type: proto.InboundTypeSetName, Name: nameA})
	readUntil(t, ctx, a, proto.OutboundTypeInfo, "Waiting for a stranger to join...")

	send(t, ctx, b, proto.Inbound{Type: proto.InboundTypeSetName, Name: nameB})
	readUntil(t, ctx, a, proto.OutboundTypePartner, "Partner connected: "+nameB)
	readUntil(t, ctx, b, proto.OutboundTypePartner, "Partner connected: "+nameA)
}
