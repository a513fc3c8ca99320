package world

// Ledger is the colony-wide resource count. It is a cache kept in step with
// the items lying on the map by every drop, pickup and consume.
type Ledger struct {
	amounts map[Material]int
}

func NewLedger() *Ledger {
	l := &Ledger{amounts: map[Material]int{}}
	for _, m := range Materials {
		l.amounts[m] = 0
	}
	return l
}

func (l *Ledger) Get(m Material) int { return l.amounts[m] }

func (l *Ledger) add(m Material, n int) { l.amounts[m] += n }

// Snapshot returns a copy keyed by material name.
func (l *Ledger) Snapshot() map[string]int {
	out := make(map[string]int, len(l.amounts))
	for m, n := range l.amounts {
		out[string(m)] = n
	}
	return out
}
