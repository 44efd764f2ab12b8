package engine

// MateScore, MaxPly and DrawScore: mate is scored at 10000 minus the number
// of plies to deliver it, so shorter mates sort ahead of longer ones;
// search never recurses past MaxPly.
const (
	MateScore = 10000
	DrawScore = 0
	InfScore  = MateScore + MaxPly + 1
	MaxPly    = 64
)

func isMateScore(score int) bool {
	return score >= MateScore-MaxPly || score <= -MateScore+MaxPly
}
