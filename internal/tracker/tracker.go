// Package tracker implements the draw-state bookkeeping for a Loto/Bingo
// session: which numbers were called, per game, plus running statistics.
package tracker

// Target selects which called-number set an operation applies to.
type Target string

const (
	TargetLoto  Target = "loto"
	TargetBingo Target = "bingo"
)

const (
	// MinNumber and MaxNumber bound the callable range.
	MinNumber = 1
	MaxNumber = 90
)

// GameRecord holds the Loto numbers called during one game, in call order.
type GameRecord struct {
	Loto     []int `json:"loto"`
	LastLoto *int  `json:"lastLoto"`
}

// State is the whole tracker session. It is persisted as one JSON blob and
// rewritten in full after every mutation.
type State struct {
	Games           map[int]*GameRecord `json:"games"`
	Bingo           []int               `json:"bingo"`
	LastNumber      *int                `json:"lastNum"`
	LastBingoNumber *int                `json:"lastBingo"`
	CurrentGame     int                 `json:"currentGame"`
	TotalGames      int                 `json:"totalGames"`
	Statistics      map[int]int         `json:"stats"`
}

// NewState returns the default session: one empty game, index 1.
func NewState() *State {
	return &State{
		Games:       map[int]*GameRecord{1: {}},
		CurrentGame: 1,
		TotalGames:  1,
		Statistics:  map[int]int{},
	}
}

// Normalize repairs nil maps after decoding an older or partial blob.
func (s *State) Normalize() {
	if s.Games == nil {
		s.Games = map[int]*GameRecord{}
	}
	for i, g := range s.Games {
		if g == nil {
			s.Games[i] = &GameRecord{}
		}
	}
	if s.Statistics == nil {
		s.Statistics = map[int]int{}
	}
	if s.CurrentGame < 1 {
		s.CurrentGame = 1
	}
	if s.TotalGames < s.CurrentGame {
		s.TotalGames = s.CurrentGame
	}
	if _, ok := s.Games[s.CurrentGame]; !ok {
		s.Games[s.CurrentGame] = &GameRecord{}
	}
}

// currentRecord returns the record for the current game, creating it if absent.
func (s *State) currentRecord() *GameRecord {
	g, ok := s.Games[s.CurrentGame]
	if !ok {
		g = &GameRecord{}
		s.Games[s.CurrentGame] = g
	}
	return g
}

func contains(seq []int, n int) bool {
	for _, v := range seq {
		if v == n {
			return true
		}
	}
	return false
}

func indexOf(seq []int, n int) int {
	for i, v := range seq {
		if v == n {
			return i
		}
	}
	return -1
}

func intPtr(n int) *int { return &n }

// Call registers a called number. A Loto call touches only the current game.
// A Bingo call also registers as a Loto call for the current game, unless the
// number is already on the game's Loto sheet, and is a complete no-op when the
// number is already in the Bingo set. Statistics count Loto registrations only.
func (s *State) Call(n int, target Target) {
	if n < MinNumber || n > MaxNumber {
		return
	}
	switch target {
	case TargetLoto:
		s.callLoto(n)
	case TargetBingo:
		if contains(s.Bingo, n) {
			return
		}
		s.Bingo = append(s.Bingo, n)
		s.LastBingoNumber = intPtr(n)
		s.callLoto(n)
	}
}

func (s *State) callLoto(n int) {
	g := s.currentRecord()
	if contains(g.Loto, n) {
		return
	}
	g.Loto = append(g.Loto, n)
	g.LastLoto = intPtr(n)
	s.LastNumber = intPtr(n)
	s.Statistics[n]++
}

// Erase removes a called number. When the erased number is the last one
// called, the "last called" pointer falls back to the element that preceded it
// in call order. The predecessor is taken from the pre-erase position and is
// not re-validated after further erases; this mirrors the historical
// behaviour and is a known approximation, not strict undo semantics.
func (s *State) Erase(n int, target Target) {
	switch target {
	case TargetLoto:
		g := s.currentRecord()
		prev := predecessor(g.Loto, n)
		g.Loto = remove(g.Loto, n)
		if g.LastLoto != nil && *g.LastLoto == n {
			g.LastLoto = prev
		}
		if s.LastNumber != nil && *s.LastNumber == n {
			s.LastNumber = prev
		}
	case TargetBingo:
		prev := predecessor(s.Bingo, n)
		s.Bingo = remove(s.Bingo, n)
		if s.LastBingoNumber != nil && *s.LastBingoNumber == n {
			s.LastBingoNumber = prev
		}
	}
}

// predecessor returns the element immediately before n in seq, or nil when n
// is absent, first, or the only element.
func predecessor(seq []int, n int) *int {
	if len(seq) <= 1 {
		return nil
	}
	idx := indexOf(seq, n)
	if idx <= 0 {
		return nil
	}
	return intPtr(seq[idx-1])
}

func remove(seq []int, n int) []int {
	out := seq[:0]
	for _, v := range seq {
		if v != n {
			out = append(out, v)
		}
	}
	return out
}

// StartNewGame advances to the next game index, creating its record when
// absent and growing the game counter when needed. The last-called display is
// cleared; per-game records are left untouched.
func (s *State) StartNewGame() {
	next := s.CurrentGame + 1
	if _, ok := s.Games[next]; !ok {
		s.Games[next] = &GameRecord{}
	}
	s.CurrentGame = next
	if next > s.TotalGames {
		s.TotalGames = next
	}
	s.LastNumber = nil
}

// NavigateToGame switches to an existing game index. Out-of-range indexes are
// a silent no-op.
func (s *State) NavigateToGame(index int) {
	if index < 1 || index > s.TotalGames {
		return
	}
	g, ok := s.Games[index]
	if !ok {
		g = &GameRecord{}
		s.Games[index] = g
	}
	s.CurrentGame = index
	s.LastNumber = g.LastLoto
}

// ResetLoto clears the current game's sheet. Other games, the Bingo set and
// the statistics are unaffected.
func (s *State) ResetLoto() {
	s.Games[s.CurrentGame] = &GameRecord{}
	s.LastNumber = nil
}

// ResetBingo clears the global Bingo set.
func (s *State) ResetBingo() {
	s.Bingo = nil
	s.LastBingoNumber = nil
}

// ResetStatistics clears the per-number call counts.
func (s *State) ResetStatistics() {
	s.Statistics = map[int]int{}
}
