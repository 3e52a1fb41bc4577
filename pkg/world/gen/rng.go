package gen

// worldRNG is a small deterministic LCG used for probe jitter and skips.
// Seeded per (world seed, chunk, pass) so chunk assembly is fully
// reproducible; probe placement never depends on process-level randomness.
type worldRNG struct {
	state int64
}

func newWorldRNG(seed int64, cx, cy int, salt int64) *worldRNG {
	s := seed ^ (int64(cx)*341873128712 + int64(cy)*132897987541 + salt)
	return &worldRNG{state: s}
}

func (r *worldRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

func (r *worldRNG) nextN(n int) int {
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}
