package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/strangerchat-server/internal/core"
	"github.com/vovakirdan/strangerchat-server/internal/store"
	"github.com/vovakirdan/strangerchat-server/internal/store/sqlite"
)

func TestRecorderPersistsPairLifecycle(t *testing.T) {
	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer st.Close()

	rec := store.NewRecorder(st, nil, 16)
	ctx, cancel := context.WithCancel(context.Background())
	go rec.Run(ctx)

	started := time.UnixMilli(1_700_000_000_000)
	rec.PairStarted(core.PairRecord{PairID: "p1", FirstID: "a", SecondID: "b", StartedAt: started})
	rec.PairEnded(core.PairRecord{
		PairID:    "p1",
		FirstID:   "a",
		SecondID:  "b",
		StartedAt: started,
		EndedAt:   started.Add(time.Minute),
		Reason:    core.EndReasonLeft,
	})
	rec.PairStarted(core.PairRecord{PairID: "p2", FirstID: "c", SecondID: "d", StartedAt: started})

	cancel()
	select {
	case <-rec.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("recorder did not stop")
	}

	stats, err := st.SessionStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 || stats.Active != 1 || stats.AvgDuration != time.Minute {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	p1, err := st.GetPairSession(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get p1: %v", err)
	}
	if p1.EndReason == nil || *p1.EndReason != string(core.EndReasonLeft) {
		t.Fatalf("unexpected end reason: %+v", p1)
	}
}

func TestRecorderWithHub(t *testing.T) {
	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer st.Close()

	rec := store.NewRecorder(st, nil, 16)
	recCtx, stopRecorder := context.WithCancel(context.Background())
	go rec.Run(recCtx)

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := core.NewHub(core.WithRecorder(rec))
	hubDone := make(chan struct{})
	go func() {
		hub.Run(hubCtx)
		close(hubDone)
	}()

	a, b := core.NewClient("a", 16), core.NewClient("b", 16)
	_ = hub.RegisterClient(a)
	_ = hub.RegisterClient(b)
	_ = hub.Submit(a, core.Command{Kind: core.CommandSetName, Name: "A"})
	_ = hub.Submit(b, core.Command{Kind: core.CommandSetName, Name: "B"})
	_ = hub.Submit(a, core.Command{Kind: core.CommandLeaveChat})

	// Snapshot is answered after every earlier operation was applied.
	if _, err := hub.Snapshot(context.Background()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	stopHub()
	<-hubDone
	stopRecorder()
	<-rec.Done()

	stats, err := st.SessionStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 1 || stats.Ended != 1 {
		t.Fatalf("expected one ended session, got %+v", stats)
	}
}
