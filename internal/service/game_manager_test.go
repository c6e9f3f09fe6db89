package service

import (
	"errors"
	"testing"

	"github.com/dmaufer/chess-backend/internal/engine"
	"github.com/dmaufer/chess-backend/internal/model"
)

func mustSquare(t *testing.T, coord string) engine.Square {
	t.Helper()
	sq, err := engine.ParseSquare(coord)
	if err != nil {
		t.Fatalf("parse %q: %v", coord, err)
	}
	return sq
}

func TestGameLifecycle(t *testing.T) {
	gm := NewGameManager()

	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := gm.CreateGame("g1"); err == nil {
		t.Fatalf("duplicate create should fail")
	}

	white, err := gm.AddPlayerToGame("g1", "alice")
	if err != nil || white != engine.White {
		t.Fatalf("first join = %s, %v", white, err)
	}
	black, err := gm.AddPlayerToGame("g1", "bob")
	if err != nil || black != engine.Black {
		t.Fatalf("second join = %s, %v", black, err)
	}

	if err := gm.MakeMove("g1", "alice", model.WSMove{
		From: mustSquare(t, "e2"),
		To:   mustSquare(t, "e4"),
	}); err != nil {
		t.Fatalf("move: %v", err)
	}

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.ToMove != engine.Black {
		t.Fatalf("expected Black to move, got %s", state.ToMove)
	}
}

func TestUnknownGame(t *testing.T) {
	gm := NewGameManager()

	if _, err := gm.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := gm.AddPlayerToGame("missing", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestExportImport(t *testing.T) {
	gm := NewGameManager()
	if err := gm.CreateGame("src"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := gm.AddPlayerToGame("src", "alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := gm.AddPlayerToGame("src", "bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := gm.MakeMove("src", "alice", model.WSMove{
		From: mustSquare(t, "d2"),
		To:   mustSquare(t, "d4"),
	}); err != nil {
		t.Fatalf("move: %v", err)
	}

	data, err := gm.Snapshot("src")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if err := gm.ImportGame("copy", data); err != nil {
		t.Fatalf("import: %v", err)
	}

	state, err := gm.GetGameState("copy")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.ToMove != engine.Black {
		t.Fatalf("imported game should have Black to move, got %s", state.ToMove)
	}

	bad := engine.SaveData{Moves: []engine.MoveRecord{{From: "a1", To: "h8"}}}
	if err := gm.ImportGame("bad", bad); !errors.Is(err, engine.ErrInvalidSaveData) {
		t.Fatalf("expected ErrInvalidSaveData, got %v", err)
	}
}

func TestSupersededPollKeepsNewerChannel(t *testing.T) {
	gm := NewGameManager()

	ch1 := make(chan string, 1)
	ch2 := make(chan string, 1)
	gm.RegisterMatchmakingChannel("p", ch1)
	gm.RegisterMatchmakingChannel("p", ch2)

	if _, ok := <-ch1; ok {
		t.Fatalf("superseded channel should be closed")
	}

	// The old poll winds down after being replaced; it must not take
	// the new poll's channel with it.
	gm.UnregisterMatchmakingChannel("p", ch1)
	gm.mu.RLock()
	registered := gm.matchingChannels["p"]
	gm.mu.RUnlock()
	if registered != ch2 {
		t.Fatalf("newer channel was detached by the stale poll")
	}

	gm.UnregisterMatchmakingChannel("p", ch2)
	gm.mu.RLock()
	_, exists := gm.matchingChannels["p"]
	gm.mu.RUnlock()
	if exists {
		t.Fatalf("owner unregister should detach the channel")
	}
}

func TestLegalMoveTargetsRouting(t *testing.T) {
	gm := NewGameManager()
	if err := gm.CreateGame("g"); err != nil {
		t.Fatalf("create: %v", err)
	}

	targets, err := gm.LegalMoveTargets("g", mustSquare(t, "g1"))
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 knight targets, got %d", len(targets))
	}
}
