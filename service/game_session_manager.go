package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/mazechase/config"
	dmn "github.com/beka-birhanu/mazechase/domain"
	"github.com/beka-birhanu/mazechase/game"
	"github.com/beka-birhanu/mazechase/game/maze"
	"github.com/beka-birhanu/mazechase/service/i"
	"github.com/google/uuid"
)

const (
	defaultIdleTimeout = 10 * time.Minute
	recordTimeout      = 2 * time.Second
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("session belongs to another player")
	ErrMazeNotReady    = errors.New("session has no maze yet")
)

type sessionEntry struct {
	sync.Mutex
	session  *game.Session
	owner    uuid.UUID
	lastSeen time.Time
	recorded bool
}

// GameSessionManager keeps one game.Session per session ID and records
// finished games.
type GameSessionManager struct {
	sessions    map[uuid.UUID]*sessionEntry
	runRepo     i.RunRepo
	leaderboard i.Leaderboard
	idleTimeout time.Duration
	logger      *log.Logger
	now         func() time.Time
	newSeed     func() int64
	sync.RWMutex
}

type Config struct {
	RunRepo     i.RunRepo
	Leaderboard i.Leaderboard
	IdleTimeout time.Duration
	Logger      *log.Logger
}

func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c.RunRepo == nil || c.Leaderboard == nil {
		return nil, errors.New("session manager needs a run repo and a leaderboard")
	}
	if c.Logger == nil {
		return nil, errors.New("session manager needs a logger")
	}

	idle := c.IdleTimeout
	if idle <= 0 {
		idle = defaultIdleTimeout
	}

	return &GameSessionManager{
		sessions:    make(map[uuid.UUID]*sessionEntry),
		runRepo:     c.RunRepo,
		leaderboard: c.Leaderboard,
		idleTimeout: idle,
		logger:      c.Logger,
		now:         time.Now,
		newSeed:     randomSeed,
	}, nil
}

func (g *GameSessionManager) NewSession(playerID uuid.UUID) uuid.UUID {
	g.Lock()
	defer g.Unlock()

	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	g.sessions[sessionID] = &sessionEntry{
		session:  game.NewSession(),
		owner:    playerID,
		lastSeen: g.now(),
	}
	g.logger.Printf("%s[INFO]%s created session %s for player %s", config.LogInfoColor, config.LogColorReset, sessionID, playerID)
	return sessionID
}

func (g *GameSessionManager) Start(playerID, sessionID uuid.UUID, d maze.Difficulty, seed int64) (game.Snapshot, error) {
	entry, err := g.acquire(playerID, sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	defer entry.Unlock()

	if seed == 0 {
		seed = g.newSeed()
	}
	if err := entry.session.Start(d, seed); err != nil {
		return game.Snapshot{}, err
	}
	entry.recorded = false

	g.logger.Printf("%s[INFO]%s started %s game in session %s with seed %d", config.LogInfoColor, config.LogColorReset, d, sessionID, seed)
	return entry.session.Snapshot(), nil
}

func (g *GameSessionManager) Tick(ctx context.Context, playerID, sessionID uuid.UUID, dt float64, in game.Input) (game.Snapshot, error) {
	entry, err := g.acquire(playerID, sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}

	before := entry.session.State()
	entry.session.Tick(dt, in)
	snap := entry.session.Snapshot()

	var run *dmn.Run
	if before == game.Playing && snap.State == game.GameOver && !entry.recorded {
		entry.recorded = true
		run = g.newRun(entry, sessionID, snap)
	}
	entry.Unlock()

	if run != nil {
		g.record(ctx, run)
	}
	return snap, nil
}

func (g *GameSessionManager) Snapshot(playerID, sessionID uuid.UUID) (game.Snapshot, error) {
	entry, err := g.acquire(playerID, sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	defer entry.Unlock()
	return entry.session.Snapshot(), nil
}

func (g *GameSessionManager) Maze(playerID, sessionID uuid.UUID) (game.MazeView, error) {
	entry, err := g.acquire(playerID, sessionID)
	if err != nil {
		return game.MazeView{}, err
	}
	defer entry.Unlock()

	view, ok := entry.session.MazeView()
	if !ok {
		return game.MazeView{}, ErrMazeNotReady
	}
	return view, nil
}

func (g *GameSessionManager) Reset(playerID, sessionID uuid.UUID) (game.Snapshot, error) {
	entry, err := g.acquire(playerID, sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	defer entry.Unlock()

	if err := entry.session.Reset(); err != nil {
		return game.Snapshot{}, err
	}
	return entry.session.Snapshot(), nil
}

// End abandons a running game and drops the session.
func (g *GameSessionManager) End(playerID, sessionID uuid.UUID) error {
	g.Lock()
	defer g.Unlock()

	entry, ok := g.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if entry.owner != playerID {
		return ErrNotSessionOwner
	}

	entry.Lock()
	_ = entry.session.Abandon()
	entry.Unlock()

	delete(g.sessions, sessionID)
	g.logger.Printf("%s[INFO]%s ended session %s", config.LogInfoColor, config.LogColorReset, sessionID)
	return nil
}

func (g *GameSessionManager) Runs(ctx context.Context, playerID uuid.UUID, limit int64) ([]dmn.Run, error) {
	return g.runRepo.ByPlayer(ctx, playerID, limit)
}

func (g *GameSessionManager) Leaderboard(ctx context.Context, d maze.Difficulty, n int64) ([]dmn.LeaderboardEntry, int64, error) {
	if _, err := d.Profile(); err != nil {
		return nil, 0, err
	}
	entries, err := g.leaderboard.Top(ctx, d.String(), n)
	if err != nil {
		return nil, 0, err
	}
	total, err := g.leaderboard.Count(ctx, d.String())
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Sweep drops sessions idle for longer than the idle timeout and returns how
// many were removed.
func (g *GameSessionManager) Sweep() int {
	g.Lock()
	defer g.Unlock()

	cutoff := g.now().Add(-g.idleTimeout)
	removed := 0
	for id, entry := range g.sessions {
		entry.Lock()
		idle := entry.lastSeen.Before(cutoff)
		entry.Unlock()
		if idle {
			delete(g.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		g.logger.Printf("%s[INFO]%s swept %d idle sessions", config.LogInfoColor, config.LogColorReset, removed)
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (g *GameSessionManager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Sweep()
		}
	}
}

// StopAll abandons every running game and drops all sessions.
func (g *GameSessionManager) StopAll() {
	g.Lock()
	defer g.Unlock()

	for id, entry := range g.sessions {
		entry.Lock()
		_ = entry.session.Abandon()
		entry.Unlock()
		delete(g.sessions, id)
	}
}

// acquire returns the owned session entry locked and marks it seen.
func (g *GameSessionManager) acquire(playerID, sessionID uuid.UUID) (*sessionEntry, error) {
	g.RLock()
	entry, ok := g.sessions[sessionID]
	g.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if entry.owner != playerID {
		return nil, ErrNotSessionOwner
	}

	entry.Lock()
	entry.lastSeen = g.now()
	return entry, nil
}

func (g *GameSessionManager) newRun(entry *sessionEntry, sessionID uuid.UUID, snap game.Snapshot) *dmn.Run {
	grid := entry.session.Grid()
	return &dmn.Run{
		ID:         uuid.New(),
		PlayerID:   entry.owner,
		SessionID:  sessionID,
		Difficulty: snap.Difficulty.String(),
		Seed:       snap.Seed,
		Outcome:    snap.Outcome.String(),
		Seconds:    snap.Elapsed,
		Width:      grid.Width(),
		Height:     grid.Height(),
		FinishedAt: g.now().UTC(),
	}
}

// record stores the run and ranks escapes. Failures are logged; the game
// itself has already finished.
func (g *GameSessionManager) record(ctx context.Context, run *dmn.Run) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := g.runRepo.Save(ctx, run); err != nil {
		g.logger.Printf("%s[ERROR]%s saving run %s: %s", config.LogErrorColor, config.LogColorReset, run.ID, err)
	}

	if run.Outcome != game.Escaped.String() {
		return
	}
	if err := g.leaderboard.Submit(ctx, run.Difficulty, run.PlayerID, run.Seconds); err != nil {
		g.logger.Printf("%s[ERROR]%s submitting escape of %s: %s", config.LogErrorColor, config.LogColorReset, run.PlayerID, err)
		return
	}
	g.logger.Printf("%s[INFO]%s player %s escaped %s maze in %.2fs", config.LogInfoColor, config.LogColorReset, run.PlayerID, run.Difficulty, run.Seconds)
}

func randomSeed() int64 {
	for {
		if seed := rand.Int63(); seed != 0 {
			return seed
		}
	}
}
