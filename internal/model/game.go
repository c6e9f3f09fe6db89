package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dmaufer/chess-backend/internal/ai"
	"github.com/dmaufer/chess-backend/internal/engine"
	"github.com/dmaufer/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameFull    = errors.New("game is full")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotSeated   = errors.New("player is not seated in this game")
)

const initialClockTime = 600 * time.Second

// GameConnections holds the websocket connections observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game wraps one engine.GameState with everything the server needs
// around it: seats, clocks, notation history and observers. The engine
// state is owned exclusively by the Game and only touched under mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       *engine.GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	players     Seats
	bot         *ai.Player
	plies       []Ply
	captured    CapturedPieces
	lastMove    *SimpleMove
	sound       string
}

type Seats struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type CapturedPieces struct {
	White []engine.Piece `json:"white"`
	Black []engine.Piece `json:"black"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		state:       engine.NewGame(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(initialClockTime),
		blackClock:  NewClock(initialClockTime),
	}
}

// NewComputerGame seats a bot on the opposite color of the human seat.
// If the bot has White it plays its first move immediately; there are
// no observers yet, so nothing is broadcast.
func NewComputerGame(id string, humanColor engine.Color) *Game {
	g := NewGame(id)
	g.bot = ai.New(humanColor.Opponent())
	if g.bot.Color() == engine.White {
		g.playBotMove()
	}
	return g
}

// NewGameFromSnapshot validates the snapshot by full replay and then
// replays it once more to rebuild the notation history.
func NewGameFromSnapshot(id string, data engine.SaveData) (*Game, error) {
	restored, err := engine.Restore(data)
	if err != nil {
		return nil, err
	}
	g := NewGame(id)
	for _, m := range restored.History() {
		g.recordPly(m)
		if _, err := g.state.ApplyMove(m); err != nil {
			return nil, fmt.Errorf("%w: replay diverged", engine.ErrInvalidSaveData)
		}
	}
	return g, nil
}

func (g *Game) AddPlayer(playerID string) (engine.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	botColor := engine.Color("")
	if g.bot != nil {
		botColor = g.bot.Color()
	}
	if g.players.White.ID == "" && botColor != engine.White {
		g.players.White = ClientPlayer{ID: playerID, Color: engine.White, TimeLeft: clockUnits(g.whiteClock.GetTimeLeft())}
		return engine.White, nil
	}
	if g.players.Black.ID == "" && botColor != engine.Black {
		g.players.Black = ClientPlayer{ID: playerID, Color: engine.Black, TimeLeft: clockUnits(g.blackClock.GetTimeLeft())}
		return engine.Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.players.White.ID != "" && g.players.White.ID == playerID {
		return true
	}
	if g.players.Black.ID != "" && g.players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	if g.bot != nil {
		return g.players.White.ID == "" && g.players.Black.ID == ""
	}
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) seatColor(playerID string) (engine.Color, bool) {
	if g.players.White.ID == playerID && playerID != "" {
		return engine.White, true
	}
	if g.players.Black.ID == playerID && playerID != "" {
		return engine.Black, true
	}
	return "", false
}

// MakeMove validates the player's seat and routes the move through the
// engine. An illegal move leaves everything untouched and is reported
// back for the client to re-prompt.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	// Client squares are raw ints; reject out-of-range coordinates
	// before anything indexes the board with them.
	if _, err := engine.NewSquare(move.From.File, move.From.Rank); err != nil {
		return engine.ErrIllegalMove
	}
	if _, err := engine.NewSquare(move.To.File, move.To.Rank); err != nil {
		return engine.ErrIllegalMove
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	color, seated := g.seatColor(playerID)
	if !seated {
		return ErrNotSeated
	}
	if color != g.state.ToMove() {
		return ErrNotYourTurn
	}

	if err := g.applyMove(engine.Move{From: move.From, To: move.To, Promotion: move.Promotion}); err != nil {
		return err
	}

	if g.bot != nil {
		status := g.state.Status()
		if !status.Terminal() && g.state.ToMove() == g.bot.Color() {
			g.playBotMove()
		}
	}

	go g.broadcastState()
	return nil
}

// applyMove performs one ply for whichever side is to move: clock
// bookkeeping, engine application, history and sound. Caller holds mu.
func (g *Game) applyMove(m engine.Move) error {
	mover := g.state.ToMove()
	clock, otherClock := g.whiteClock, g.blackClock
	if mover == engine.Black {
		clock, otherClock = g.blackClock, g.whiteClock
	}

	ply, captured := g.buildPly(m)
	status, err := g.state.ApplyMove(m)
	if err != nil {
		return err
	}

	clock.Stop()
	if !status.Terminal() {
		otherClock.Start()
	}
	g.players.White.TimeLeft = clockUnits(g.whiteClock.GetTimeLeft())
	g.players.Black.TimeLeft = clockUnits(g.blackClock.GetTimeLeft())

	g.plies = append(g.plies, ply)
	g.recordCapture(mover, captured)
	g.lastMove = &SimpleMove{From: m.From, To: m.To}

	switch {
	case status.State == engine.StatusCheck || status.State == engine.StatusCheckmate:
		g.sound = "check"
	case captured != nil:
		g.sound = "capture"
	default:
		g.sound = "move"
	}
	return nil
}

// recordPly is applyMove without clocks or sounds, used when rebuilding
// history from a snapshot before the game is exposed to callers.
func (g *Game) recordPly(m engine.Move) {
	ply, captured := g.buildPly(m)
	g.plies = append(g.plies, ply)
	g.recordCapture(ply.Color, captured)
	g.lastMove = &SimpleMove{From: m.From, To: m.To}
}

func (g *Game) recordCapture(mover engine.Color, captured *engine.Piece) {
	if captured == nil {
		return
	}
	if mover == engine.White {
		g.captured.White = append(g.captured.White, *captured)
	} else {
		g.captured.Black = append(g.captured.Black, *captured)
	}
}

// buildPly captures notation and the captured piece before the move is
// applied, while the pre-move board is still available.
func (g *Game) buildPly(m engine.Move) (Ply, *engine.Piece) {
	mover := g.state.ToMove()
	ply := Ply{
		Color:     mover,
		From:      m.From,
		To:        m.To,
		Promotion: m.Promotion,
		Notation:  g.state.Notation(m),
	}
	board := g.state.Board()
	if target, occupied := board.PieceAt(m.To); occupied {
		return ply, &target
	}
	// En passant captures a pawn that is not on the destination square.
	if ep := g.state.EnPassantTarget(); ep != nil && *ep == m.To {
		if moved, ok := board.PieceAt(m.From); ok && moved.Kind == engine.Pawn {
			victim := engine.Piece{Color: mover.Opponent(), Kind: engine.Pawn}
			return ply, &victim
		}
	}
	return ply, nil
}

func (g *Game) playBotMove() {
	m, ok := g.bot.SelectMove(g.state)
	if !ok {
		return
	}
	if err := g.applyMove(m); err != nil {
		// The bot picked from the legal set, so a rejection here is an
		// engine bug, not a bad request.
		panic(&engine.InvariantViolation{Reason: "bot move rejected: " + err.Error()})
	}
}

// LegalMoveTargets returns the destination squares for the piece on sq,
// for the client to highlight. Empty for a bad selection.
func (g *Game) LegalMoveTargets(sq engine.Square) []engine.Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	var targets []engine.Square
	seen := make(map[engine.Square]bool)
	for _, m := range g.state.LegalMovesFrom(sq) {
		if seen[m.To] {
			continue // promotion choices share a destination
		}
		seen[m.To] = true
		targets = append(targets, m.To)
	}
	return targets
}

func (g *Game) Snapshot() engine.SaveData {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Snapshot()
}

func (g *Game) GetState() ClientState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buildClientState()
}

// buildClientState projects the engine state into the JSON shape the
// client renders. Caller holds mu.
func (g *Game) buildClientState() ClientState {
	board := g.state.Board()
	grid := make([][]*engine.Piece, 8)
	for rank := 0; rank < 8; rank++ {
		grid[rank] = make([]*engine.Piece, 8)
		for file := 0; file < 8; file++ {
			if p, occupied := board.PieceAt(engine.Square{File: file, Rank: rank}); occupied {
				piece := p
				grid[rank][file] = &piece
			}
		}
	}

	status := g.state.Status()
	return ClientState{
		Sound:           g.sound,
		Board:           grid,
		ToMove:          g.state.ToMove(),
		MoveHistory:     pairPlies(g.plies),
		CapturedPieces:  g.captured,
		Status:          status,
		IsCheck:         status.State == engine.StatusCheck || status.State == engine.StatusCheckmate,
		EnPassantTarget: g.state.EnPassantTarget(),
		CastlingRights:  g.state.CastlingRights(),
		HalfmoveClock:   g.state.HalfmoveClock(),
		FullmoveNumber:  g.state.FullmoveNumber(),
		LastMove:        g.lastMove,
		Players:         g.players,
	}
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection, reject the duplicate.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}

func clockUnits(d time.Duration) int {
	return int(d.Milliseconds() / 100)
}
