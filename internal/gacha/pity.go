package gacha

// PitySystem is a hard pity counter: the Pity-th draw since the last hit is
// guaranteed.
type PitySystem struct {
	Pity  int          // draws until a guaranteed hit
	Count int          // draws since the last hit
	RNG   RandomSource
}

// NewPitySystem creates a hard pity system. A nil rng uses DefaultRNG.
func NewPitySystem(pity int, rng RandomSource) *PitySystem {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &PitySystem{Pity: pity, RNG: rng}
}

// forced reports whether the next draw reaches the pity threshold.
func (ps *PitySystem) forced() bool {
	return ps.Pity > 0 && ps.Count+1 >= ps.Pity
}

// record updates the counter after a draw.
func (ps *PitySystem) record(hit bool) {
	if hit {
		ps.Count = 0
	} else {
		ps.Count++
	}
}

// Draw performs one draw with chance p, forced to hit at the threshold.
// A non-positive Pity disables the guarantee.
func (ps *PitySystem) Draw(p float64) (bool, error) {
	if ps.forced() {
		ps.record(true)
		return true, nil
	}
	hit, err := Draw(p, ps.RNG)
	if err != nil {
		return false, err
	}
	ps.record(hit)
	return hit, nil
}
