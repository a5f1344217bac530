package http

import (
	"context"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/strangerchat-server/internal/proto"
)

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t, nil)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketPairAndChat(t *testing.T) {
	ts := startTestServer(t, nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	connA := dial(t, ctx, ts)
	connB := dial(t, ctx, ts)

	pairClients(t, ctx, connA, connB, "alice", "bob")

	send(t, ctx, connA, proto.Inbound{Type: proto.InboundTypeChat, Message: "hi there"})

	chat := readUntil(t, ctx, connB, proto.OutboundTypeChat, "")
	if chat.UserName != "alice" || chat.Message != "hi there" {
		t.Fatalf("unexpected chat payload: %+v", chat)
	}
}

func TestWebSocketLeaveChat(t *testing.T) {
	ts := startTestServer(t, nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	connA := dial(t, ctx, ts)
	connB := dial(t, ctx, ts)
	pairClients(t, ctx, connA, connB, "alice", "bob")

	send(t, ctx, connA, proto.Inbound{Type: proto.InboundTypeLeaveChat})

	readUntil(t, ctx, connA, proto.OutboundTypeInfo, "You left the chat. Waiting for a new user...")
	readUntil(t, ctx, connB, proto.OutboundTypeInfo, "Your partner left. Waiting for a new user...")
}

func TestWebSocketDisconnectNotifiesPartner(t *testing.T) {
	ts := startTestServer(t, nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	connA := dial(t, ctx, ts)
	connB := dial(t, ctx, ts)
	pairClients(t, ctx, connA, connB, "alice", "bob")

	if err := connA.Close(websocket.StatusNormalClosure, "bye"); err != nil {
		t.Fatalf("close A: %v", err)
	}

	readUntil(t, ctx, connB, proto.OutboundTypeInfo, "Your partner disconnected. Waiting for a new user...")
	count := readUntil(t, ctx, connB, proto.OutboundTypeOnlineCount, "")
	if count.Count != 1 {
		t.Fatalf("expected online count 1, got %d", count.Count)
	}
}

func TestMalformedFramesAreIgnored(t *testing.T) {
	ts := startTestServer(t, nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dial(t, ctx, ts)

	for _, raw := range []string{"not json", `{"name":"no type"}`, `{"type":"dance"}`} {
		if err := conn.Write(ctx, websocket.MessageText, []byte(raw)); err != nil {
			t.Fatalf("write %q: %v", raw, err)
		}
	}

	// The connection must still be usable.
	send(t, ctx, conn, proto.Inbound{Type: proto.InboundTypeSetName, Name: "carol"})
	readUntil(t, ctx, conn, proto.OutboundTypeInfo, "Welcome carol! Waiting for a partner...")
}

func TestSetNameValidation(t *testing.T) {
	ts := startTestServer(t, nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dial(t, ctx, ts)

	send(t, ctx, conn, proto.Inbound{Type: proto.InboundTypeSetName})
	errFrame := readUntil(t, ctx, conn, proto.OutboundTypeError, "")
	if errFrame.Code != "bad_request" {
		t.Fatalf("expected bad_request, got %+v", errFrame)
	}

	send(t, ctx, conn, proto.Inbound{Type: proto.InboundTypeSetName, Name: "dave"})
	readUntil(t, ctx, conn, proto.OutboundTypeInfo, "Waiting for a stranger to join...")

	send(t, ctx, conn, proto.Inbound{Type: proto.InboundTypeSetName, Name: "dave"})
	errFrame = readUntil(t, ctx, conn, proto.OutboundTypeError, "")
	if errFrame.Code != "already_waiting" {
		t.Fatalf("expected already_waiting, got %+v", errFrame)
	}
}

func TestOnlineCountOnConnect(t *testing.T) {
	ts := startTestServer(t, nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	connA := dial(t, ctx, ts)
	var first proto.Frame
	if err := wsjson.Read(ctx, connA, &first); err != nil {
		t.Fatalf("read: %v", err)
	}
	if first.Type != proto.OutboundTypeOnlineCount || first.Count != 1 {
		t.Fatalf("expected onlineCount 1, got %+v", first)
	}

	dial(t, ctx, ts)
	second := readUntil(t, ctx, connA, proto.OutboundTypeOnlineCount, "")
	if second.Count != 2 {
		t.Fatalf("expected onlineCount 2, got %+v", second)
	}
}
