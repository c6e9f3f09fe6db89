package service

import (
	"fmt"

	"github.com/dmaufer/chess-backend/internal/engine"
	"github.com/dmaufer/chess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (engine.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) CreateComputerGame(humanColor engine.Color) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateComputerGame(gameID, humanColor); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) ImportGame(data engine.SaveData) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.ImportGame(gameID, data); err != nil {
		return "", err
	}
	return gameID, nil
}

func (gs *GameService) ExportGame(gameID string) (engine.SaveData, error) {
	return gs.gameManager.Snapshot(gameID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.ClientState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoveTargets(gameID string, sq engine.Square) ([]engine.Square, error) {
	return gs.gameManager.LegalMoveTargets(gameID, sq)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
