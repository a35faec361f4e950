package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/player"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

type fakeGames struct {
	mu          sync.Mutex
	schedule    map[sport.Sport][]ScheduledGame
	scheduleErr map[sport.Sport]error
	stats       map[string]statline.GameStats
	gameErr     map[string]error
	dateErr     map[string]error
	panicOn     sport.Sport
	fetched     []string
	asked       []string
}

func newFakeGames() *fakeGames {
	return &fakeGames{
		schedule:    make(map[sport.Sport][]ScheduledGame),
		scheduleErr: make(map[sport.Sport]error),
		stats:       make(map[string]statline.GameStats),
		gameErr:     make(map[string]error),
		dateErr:     make(map[string]error),
	}
}

func (f *fakeGames) addGame(s sport.Sport, game ScheduledGame, stats statline.GameStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	game.Sport = s
	f.schedule[s] = append(f.schedule[s], game)
	f.stats[game.ID] = stats
}

func (f *fakeGames) ListGames(_ context.Context, s sport.Sport, date time.Time) ([]ScheduledGame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := date.Format(time.DateOnly)
	f.asked = append(f.asked, day)
	if s == f.panicOn && s != "" {
		panic(fmt.Sprintf("schedule decoder exploded for %s", s))
	}
	if err := f.scheduleErr[s]; err != nil {
		return nil, err
	}
	if err := f.dateErr[day]; err != nil {
		return nil, err
	}
	return append([]ScheduledGame(nil), f.schedule[s]...), nil
}

func (f *fakeGames) FetchGameStats(_ context.Context, _ sport.Sport, gameID string) (statline.GameStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, gameID)
	if err := f.gameErr[gameID]; err != nil {
		return nil, err
	}
	out := statline.GameStats{}
	for id, line := range f.stats[gameID] {
		out[id] = line.Clone()
	}
	return out, nil
}

type fakeRoster struct {
	mu      sync.Mutex
	players map[sport.Sport][]player.Player
	err     error
	calls   int
}

func (f *fakeRoster) FetchActiveRoster(_ context.Context, s sport.Sport) ([]player.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]player.Player(nil), f.players[s]...), nil
}

func knownPlayer(s sport.Sport, upstreamID int64) player.Player {
	return player.Player{
		ID:          sport.PlayerID(s, upstreamID),
		Sport:       s,
		UpstreamID:  upstreamID,
		DisplayName: fmt.Sprintf("Player %d", upstreamID),
	}
}

func finalGame(id string) ScheduledGame {
	return ScheduledGame{ID: id, State: GameStateFinal}
}
