package domain

// Pair is an unordered user pair normalized to Low <= High. Compatibility
// scores are symmetric, so all cache reads and writes key on this form.
type Pair struct {
	Low  int
	High int
}

// CanonicalPair normalizes two user ids into a Pair regardless of order.
func CanonicalPair(u1, u2 int) Pair {
	if u1 > u2 {
		u1, u2 = u2, u1
	}
	return Pair{Low: u1, High: u2}
}
