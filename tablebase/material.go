package tablebase

import (
	"goosecore/board"
	"goosecore/engine"
)

// MaterialProber is a tablebase stand-in for positions with at most
// maxPieces pieces: it reports Draw for the dead-draw material
// configurations engine.InsufficientMaterial already recognizes, and
// Unknown otherwise. Real Syzygy WDL/DTZ decoding needs table files this
// module does not ship (see DESIGN.md); this keeps the Prober interface
// exercised end-to-end without fabricating a probe result it can't back up.
type MaterialProber struct {
	maxPieces int
}

// NewMaterialProber returns a prober willing to answer positions with up to
// maxPieces total pieces on the board.
func NewMaterialProber(maxPieces int) *MaterialProber {
	if maxPieces <= 0 {
		maxPieces = 6
	}
	return &MaterialProber{maxPieces: maxPieces}
}

func (m *MaterialProber) Available() bool { return true }
func (m *MaterialProber) MaxPieces() int  { return m.maxPieces }

func (m *MaterialProber) Probe(p *board.Position) ProbeResult {
	if !CanProbe(p, m.maxPieces) {
		return ProbeResult{}
	}
	if engine.InsufficientMaterial(p) {
		return ProbeResult{Found: true, WDL: Draw}
	}
	return ProbeResult{}
}

func (m *MaterialProber) ProbeRoot(p *board.Position) RootProbeResult {
	if !CanProbe(p, m.maxPieces) {
		return RootProbeResult{}
	}
	if engine.InsufficientMaterial(p) {
		return RootProbeResult{Found: true, WDL: Draw}
	}
	return RootProbeResult{}
}
