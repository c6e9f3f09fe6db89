package main

import (
	"flag"
	"log"
	"os"

	"github.com/dmaufer/chess-backend/internal/controller"
	"github.com/dmaufer/chess-backend/internal/middleware"
	"github.com/dmaufer/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

func main() {
	addr := flag.String("addr", envOr("CHESS_ADDR", ":3000"), "listen address")
	origin := flag.String("origin", envOr("CHESS_ORIGIN", "http://localhost:5173"), "allowed CORS origin")
	flag.Parse()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{*origin},
	}))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Get("/matchmaking/wait", gameController.WaitForMatch)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/create/computer", gameController.CreateComputerGame)
	gameRoutes.Post("/import", gameController.ImportGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Get("/:gameId/export", gameController.ExportGame)

	log.Fatal(app.Listen(*addr))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
