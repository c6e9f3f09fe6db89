package controller

import (
	"errors"
	"time"

	"github.com/dmaufer/chess-backend/internal/engine"
	"github.com/dmaufer/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

const matchmakingPollTimeout = 30 * time.Second

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

// CreateComputerGame creates a game against the built-in opponent. The
// requester picks their own color with ?color=, defaulting to white.
func (gc *GameController) CreateComputerGame(c *fiber.Ctx) error {
	humanColor := engine.White
	if c.Query("color") == string(engine.Black) {
		humanColor = engine.Black
	}

	gameID, err := gc.gameService.CreateComputerGame(humanColor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	playerID := c.Locals("playerID").(string)
	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}

	return c.JSON(gameState)
}

// GetLegalMoves returns the destination squares for the piece on the
// requested square, e.g. /api/game/:gameId/moves?square=e2. An empty
// list is a valid answer, not an error.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	sq, err := engine.ParseSquare(c.Query("square"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	targets, err := gc.gameService.LegalMoveTargets(gameID, sq)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute legal moves",
		})
	}
	if targets == nil {
		targets = []engine.Square{}
	}
	return c.JSON(fiber.Map{
		"square":  sq,
		"targets": targets,
	})
}

// ExportGame returns the snapshot a client can persist and later import.
func (gc *GameController) ExportGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	data, err := gc.gameService.ExportGame(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export game",
		})
	}
	return c.JSON(data)
}

// ImportGame rebuilds a game from a snapshot, replaying and validating
// every move. Corrupt saves get a 422, never a silently repaired game.
func (gc *GameController) ImportGame(c *fiber.Ctx) error {
	var data engine.SaveData
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	gameID, err := gc.gameService.ImportGame(data)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidSaveData) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to import game",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game imported",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// WaitForMatch long polls until matchmaking pairs the player or the
// poll times out; clients simply retry on timeout.
func (gc *GameController) WaitForMatch(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	ch := make(chan string, 1)
	gc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer gc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	select {
	case payload, ok := <-ch:
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "superseded by a newer poll",
			})
		}
		c.Set("Content-Type", "application/json")
		return c.SendString(payload)
	case <-time.After(matchmakingPollTimeout):
		return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{
			"status": "no match yet",
		})
	}
}
