package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dmaufer/chess-backend/internal/engine"
	"github.com/dmaufer/chess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// GameManager owns the registry of live games and the matchmaking
// queue. All rule decisions live in the engine; this layer only routes.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
	}

	go gm.processMatchmaking()

	return gm
}

// RegisterMatchmakingChannel attaches a delivery channel for the match
// found event. A stale channel from a previous long poll is replaced.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel detaches ch if it is still the one
// registered for the player. A poll that was superseded by a newer one
// must not detach its replacement, or the match event would be lost.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if gm.matchingChannels[playerID] == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			continue
		}

		gm.mu.Lock()
		gameID := uuid.New().String()
		game := model.NewGame(gameID)

		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", player1.ID, err)
			gm.mu.Unlock()
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", player2.ID, err)
			gm.mu.Unlock()
			continue
		}
		gm.games[gameID] = game

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
		gm.mu.Unlock()
	}
}

// notifyMatch sends the event if the player is long polling and detaches
// the channel either way. Caller holds mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: player %s not receiving", playerID)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}

	gm.games[gameID] = model.NewGame(gameID)
	return nil
}

func (gm *GameManager) CreateComputerGame(gameID string, humanColor engine.Color) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}

	gm.games[gameID] = model.NewComputerGame(gameID, humanColor)
	return nil
}

// ImportGame registers a game rebuilt from a snapshot. The snapshot is
// validated by replay; corrupt data is rejected, never repaired.
func (gm *GameManager) ImportGame(gameID string, data engine.SaveData) error {
	game, err := model.NewGameFromSnapshot(gameID, data)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.games[gameID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (engine.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.ClientState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) LegalMoveTargets(gameID string, sq engine.Square) ([]engine.Square, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoveTargets(sq), nil
}

func (gm *GameManager) Snapshot(gameID string) (engine.SaveData, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return engine.SaveData{}, err
	}
	return game.Snapshot(), nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}
