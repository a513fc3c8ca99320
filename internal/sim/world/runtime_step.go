package world

import "time"

func (w *World) stepInternal(cmds []CommandEnvelope) {
	stepStart := time.Now()
	nowTick := w.tick.Load()

	// Viewer commands apply at the tick boundary, in inbox order.
	for _, env := range cmds {
		w.applyCommand(nowTick, env)
	}

	for _, p := range w.pawns {
		p.Update(w)
	}
	w.ageParticles()

	nextTick := nowTick + 1
	if every := w.cfg.RefreshEveryTicks; every > 0 && nextTick%uint64(every) == 0 {
		w.refresh()
		w.lastDigest = w.stateDigest(nowTick)
	}
	if every := w.cfg.LedgerSampleEveryTicks; every > 0 && nextTick%uint64(every) == 0 {
		w.journalEvent(JournalEntry{Kind: JournalLedger, Resources: w.ledger.Snapshot()})
	}

	if w.hooks.Frame != nil {
		w.hooks.Frame(nowTick)
	}
	w.broadcastFrame(nowTick)

	stepMS := float64(time.Since(stepStart).Microseconds()) / 1000.0
	w.tick.Add(1)
	w.storeMetrics(nextTick, stepMS)
}
