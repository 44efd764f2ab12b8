// Package coordinator owns a game's lifetime: it wires together the board
// state, opening book, tablebase prober and search engine, and answers
// "what should I play here" by trying each cheaper source before falling
// through to search.
package coordinator

import (
	"time"

	"github.com/pbnjay/memory"

	"goosecore/board"
	"goosecore/book"
	"goosecore/engine"
	"goosecore/logging"
	"goosecore/tablebase"
)

// Options configures a Coordinator. Zero-value Options is usable: TT size
// is derived from system memory, book/tablebase stay disabled, and logging
// is a no-op sink.
type Options struct {
	// TTSizeMB pins the transposition table size. 0 means "derive from
	// TTMemoryFraction of total system RAM" instead.
	TTSizeMB int
	// TTMemoryFraction is the share of total system memory to give the TT
	// when TTSizeMB is 0. Defaults to 0.02 (2%) if left at zero.
	TTMemoryFraction float64
	// MaxDepth bounds every search's iterative deepening, 0 meaning
	// engine.MaxPly.
	MaxDepth int
	// BookPath, if set, is a Polyglot .bin file loaded when New runs.
	BookPath string
	// LearnedBookDir, if set, opens a persistent Badger-backed learned
	// book alongside the Polyglot book.
	LearnedBookDir string
	// TablebaseMaxPieces enables the built-in MaterialProber for
	// positions with at most this many pieces. 0 disables it.
	TablebaseMaxPieces int
	// Log receives search and probe diagnostics. Defaults to a no-op sink.
	Log logging.Sink
}

func (o *Options) fillDefaults() {
	if o.TTMemoryFraction <= 0 {
		o.TTMemoryFraction = 0.02
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = engine.MaxPly
	}
	if o.Log == nil {
		o.Log = logging.Nop()
	}
}

// resolveTTSizeMB returns the fixed size if set, otherwise a fraction of
// total system RAM via github.com/pbnjay/memory rather than a hardcoded
// constant.
func (o *Options) resolveTTSizeMB() int {
	if o.TTSizeMB > 0 {
		return o.TTSizeMB
	}
	total := memory.TotalMemory()
	if total == 0 {
		return 64
	}
	mb := int(float64(total) * o.TTMemoryFraction / (1024 * 1024))
	if mb < 4 {
		mb = 4
	}
	return mb
}

// Coordinator is the top-level entry point a UCI-style driver talks to: one
// call in, one move out, with book/tablebase/search tried in that order.
type Coordinator struct {
	opts     Options
	search   *engine.Searcher
	book     *book.Book
	learned  *book.LearnedStore
	prober   tablebase.Prober
	position *board.Position

	playedHash []uint64
	playedMove []board.Move
	playedSide []board.Color
}

// New constructs a Coordinator, loading the configured book/tablebase
// resources. It returns an error if the configured book file or
// learned-book directory cannot be opened; the built-in tablebase prober
// needs no files.
func New(opts Options) (*Coordinator, error) {
	opts.fillDefaults()

	c := &Coordinator{
		opts:     opts,
		search:   engine.NewSearcher(opts.resolveTTSizeMB()),
		prober:   tablebase.NoopProber{},
		position: board.NewEmpty(),
	}
	c.search.Log = opts.Log

	if opts.BookPath != "" {
		b, err := book.LoadPolyglot(opts.BookPath)
		if err != nil {
			return nil, err
		}
		c.book = b
	}
	if opts.LearnedBookDir != "" {
		ls, err := book.OpenLearnedStore(opts.LearnedBookDir)
		if err != nil {
			return nil, err
		}
		c.learned = ls
	}
	if opts.TablebaseMaxPieces > 0 {
		c.prober = tablebase.NewMaterialProber(opts.TablebaseMaxPieces)
	}

	return c, nil
}

// Close releases resources the Coordinator opened (currently just the
// learned-book store).
func (c *Coordinator) Close() error {
	return c.learned.Close()
}

// SetPosition replaces the position the Coordinator plays from, starting a
// fresh game: any move history pending credit toward the learned book is
// dropped.
func (c *Coordinator) SetPosition(p *board.Position) {
	c.position = p
	c.search.NewGame()
	c.playedHash = nil
	c.playedMove = nil
	c.playedSide = nil
}

// Position returns the Coordinator's current position.
func (c *Coordinator) Position() *board.Position { return c.position }

// BestMove answers "what should I play here", trying the opening book,
// then the tablebase prober, then search. limits bounds the search
// fallback only; book/tablebase answers return immediately.
func (c *Coordinator) BestMove(limits engine.Limits) (board.Move, int) {
	if m, ok := c.book.Probe(c.position); ok {
		c.opts.Log.Info("book move", "move", m.String())
		return m, 0
	}
	if c.learned != nil {
		if entries, err := c.learned.ProbeAll(c.position.Hash()); err == nil && len(entries) > 0 {
			best := entries[0]
			for _, e := range entries[1:] {
				if e.Weight > best.Weight {
					best = e
				}
			}
			c.opts.Log.Info("learned book move", "move", best.Move.String(), "weight", best.Weight)
			return best.Move, 0
		}
	}

	if c.prober.Available() {
		if result := c.prober.ProbeRoot(c.position); result.Found {
			for _, lm := range c.position.GenerateLegalMoves() {
				if lm == result.Move {
					c.opts.Log.Info("tablebase move", "move", result.Move.String(), "wdl", int(result.WDL))
					return result.Move, tablebase.WDLToScore(result.WDL, 0)
				}
			}
		}
	}

	if limits.Depth <= 0 || limits.Depth > c.opts.MaxDepth {
		limits.Depth = c.opts.MaxDepth
	}
	return c.search.FindBestMove(c.position, limits)
}

// Play applies m to the Coordinator's position, reporting false (and
// leaving the position unchanged) if it is not legal. A successful call advances the repetition history too, and
// records (hash, move, side) so RecordGameResult can later credit it in the
// learned book.
func (c *Coordinator) Play(m board.Move) (bool, board.Undo) {
	hash := c.position.Hash()
	side := c.position.SideToMove()
	ok, undo := c.position.MakeMove(m)
	if ok {
		c.search.Rep.Push(c.position.Hash(), c.position.HalfmoveClock())
		c.playedHash = append(c.playedHash, hash)
		c.playedMove = append(c.playedMove, m)
		c.playedSide = append(c.playedSide, side)
	}
	return ok, undo
}

// RecordGameResult credits every move played since the last SetPosition
// into the learned book, crediting each side's own moves positively when
// that side won. result is from White's perspective: +1 for a White win,
// 0 for a draw, -1 for a Black win. A no-op when no learned book is open.
func (c *Coordinator) RecordGameResult(result float64) error {
	if c.learned == nil {
		return nil
	}
	const scale = 50
	delta := int(result * scale)
	for i, hash := range c.playedHash {
		d := delta
		if c.playedSide[i] == board.Black {
			d = -d
		}
		if d == 0 {
			continue
		}
		if err := c.learned.RecordResult(hash, c.playedMove[i], d); err != nil {
			return err
		}
	}
	return nil
}

// AllocateMoveTime exposes the time-management heuristic for drivers that
// want to report "thinking for Xms" before calling BestMove.
func (c *Coordinator) AllocateMoveTime(remaining, increment time.Duration) time.Duration {
	th := engine.TimeHandler{Remaining: remaining, Increment: increment}
	return th.AllocateMoveTime(c.position)
}
