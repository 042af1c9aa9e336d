package tracker

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Service owns the live session state and persists it after every mutation.
// All operations run under one mutex. Persist failures are logged and dropped;
// the next successful mutation writes the full blob again.
type Service struct {
	mu     sync.Mutex
	state  *State
	store  Store
	logger *zap.Logger
}

// NewService loads the persisted session or starts a fresh one.
func NewService(store Store, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	state, found, err := store.Load()
	if err != nil {
		return nil, err
	}
	if !found {
		state = NewState()
	}
	return &Service{state: state, store: store, logger: logger}, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Call registers a number for the given target and persists.
func (s *Service) Call(n int, target Target) *State {
	return s.mutate(func(st *State) { st.Call(n, target) })
}

// Erase removes a number for the given target and persists.
func (s *Service) Erase(n int, target Target) *State {
	return s.mutate(func(st *State) { st.Erase(n, target) })
}

// StartNewGame advances to the next game and persists.
func (s *Service) StartNewGame() *State {
	return s.mutate(func(st *State) { st.StartNewGame() })
}

// NavigateToGame switches games and persists.
func (s *Service) NavigateToGame(index int) *State {
	return s.mutate(func(st *State) { st.NavigateToGame(index) })
}

// ResetLoto clears the current game's sheet and persists.
func (s *Service) ResetLoto() *State {
	return s.mutate(func(st *State) { st.ResetLoto() })
}

// ResetBingo clears the Bingo set and persists.
func (s *Service) ResetBingo() *State {
	return s.mutate(func(st *State) { st.ResetBingo() })
}

// ResetStatistics clears the call counts and persists.
func (s *Service) ResetStatistics() *State {
	return s.mutate(func(st *State) { st.ResetStatistics() })
}

// ExportStatisticsCSV renders the statistics table.
func (s *Service) ExportStatisticsCSV() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ExportStatisticsCSV()
}

func (s *Service) mutate(fn func(*State)) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
	start := time.Now()
	if err := s.store.Save(s.state); err != nil {
		s.logger.Warn("state save failed, change kept in memory",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
	}
	return s.state.clone()
}

func (s *State) clone() *State {
	out := &State{
		Games:       make(map[int]*GameRecord, len(s.Games)),
		Bingo:       append([]int(nil), s.Bingo...),
		CurrentGame: s.CurrentGame,
		TotalGames:  s.TotalGames,
		Statistics:  make(map[int]int, len(s.Statistics)),
	}
	for i, g := range s.Games {
		out.Games[i] = &GameRecord{Loto: append([]int(nil), g.Loto...)}
		if g.LastLoto != nil {
			out.Games[i].LastLoto = intPtr(*g.LastLoto)
		}
	}
	for n, c := range s.Statistics {
		out.Statistics[n] = c
	}
	if s.LastNumber != nil {
		out.LastNumber = intPtr(*s.LastNumber)
	}
	if s.LastBingoNumber != nil {
		out.LastBingoNumber = intPtr(*s.LastBingoNumber)
	}
	return out
}
