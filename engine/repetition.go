package engine

// RepetitionTracker records the Zobrist key played at each ply of the game
// so far (not just the search tree), so search can detect draws by
// threefold repetition and the 50-move rule.
type RepetitionTracker struct {
	hashes []uint64
	rule50 []int
}

func NewRepetitionTracker() *RepetitionTracker {
	return &RepetitionTracker{}
}

func (r *RepetitionTracker) Reset() {
	r.hashes = r.hashes[:0]
	r.rule50 = r.rule50[:0]
}

func (r *RepetitionTracker) Push(hash uint64, rule50 int) {
	r.hashes = append(r.hashes, hash)
	r.rule50 = append(r.rule50, rule50)
}

func (r *RepetitionTracker) Pop() {
	n := len(r.hashes)
	if n == 0 {
		return
	}
	r.hashes = r.hashes[:n-1]
	r.rule50 = r.rule50[:n-1]
}

// IsDraw reports a 50-move-rule or repetition draw as of the top of the
// stack. rootIndex marks where the search tree begins within the stack;
// earlier occurrences count toward threefold alike whether they come from
// game history or from the search tree.
func (r *RepetitionTracker) IsDraw(rootIndex int) bool {
	n := len(r.hashes)
	if n == 0 {
		return false
	}
	if r.rule50[n-1] >= 100 {
		return true
	}
	count, _ := r.repetitionInfo(n-1, rootIndex)
	return count >= 2
}

// UpcomingRepetition reports whether the position at the top of the stack
// already occurred within the last ply entries (a twofold repetition inside
// the current search line, within the 50-move window), letting the caller
// treat it as a draw before a threefold repetition is reached.
func (r *RepetitionTracker) UpcomingRepetition(ply, rootIndex int) bool {
	n := len(r.hashes)
	if n == 0 {
		return false
	}
	_, firstIdx := r.repetitionInfo(n-1, rootIndex)
	return firstIdx >= 0 && firstIdx >= n-1-r.rule50[n-1] && n-1-firstIdx <= ply
}

func (r *RepetitionTracker) repetitionInfo(top, rootIndex int) (count int, firstIdx int) {
	firstIdx = -1
	limit := top - r.rule50[top]
	if limit < 0 {
		limit = 0
	}
	target := r.hashes[top]
	for i := top - 1; i >= limit; i-- {
		if r.hashes[i] == target {
			count++
			if firstIdx < 0 {
				firstIdx = i
			}
			if count >= 2 {
				return count, firstIdx
			}
		}
	}
	return count, firstIdx
}
