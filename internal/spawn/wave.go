package spawn

import (
	"time"

	"github.com/udisondev/maskborn/internal/model"
)

type runPhase int8

const (
	phaseStartDelay runPhase = iota
	phaseEmit
)

// waveRun is the timer state of one wave: the entry being processed, how many
// of its enemies were emitted and the time left before the next step.
// Overshoot carries over so long ticks never lose spawns.
type waveRun struct {
	wave    *model.Wave
	entry   int
	emitted int
	phase   runPhase
	wait    time.Duration
}

func newWaveRun(wave *model.Wave) *waveRun {
	r := &waveRun{wave: wave}
	if len(wave.Entries) > 0 {
		r.wait = wave.Entries[0].StartDelay
	}
	return r
}

// step performs the action that is due. It returns the entry to spawn from
// (nil when the step only changed phase) and false once the wave is done.
// Every spawn is followed by a SpawnRate wait, including the last one.
func (r *waveRun) step() (*model.WaveEntry, bool) {
	if r.entry >= len(r.wave.Entries) {
		return nil, false
	}
	e := &r.wave.Entries[r.entry]

	switch r.phase {
	case phaseStartDelay:
		r.phase = phaseEmit
		return nil, true
	default:
		if r.emitted < e.Count {
			r.emitted++
			r.wait += e.SpawnRate
			return e, true
		}
		r.entry++
		r.emitted = 0
		r.phase = phaseStartDelay
		if r.entry >= len(r.wave.Entries) {
			return nil, false
		}
		r.wait += r.wave.Entries[r.entry].StartDelay
		return nil, true
	}
}
