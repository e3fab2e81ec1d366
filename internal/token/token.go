package token

// Token defines how much premium currency a draw costs.
type Token struct {
	Name       string // e.g. "Originium", "Stellar Jade"
	PerDraw    int    // cost of a single draw
	PerTenDraw int    // optional discounted ten-draw; 0 means 10 * PerDraw
	PerNDraw   int    // optional discounted N-draw bundle
	N          int    // bundle size for PerNDraw; <= 1 disables it
}

// bundle returns the discounted bundle size and price, if any.
func (t Token) bundle() (size, price int) {
	switch {
	case t.PerNDraw > 0 && t.N > 1:
		return t.N, t.PerNDraw
	case t.PerTenDraw > 0:
		return 10, t.PerTenDraw
	}
	return 1, t.PerDraw
}

// TokensForDraws returns how many tokens n draws cost, using bundles first.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	size, price := t.bundle()
	return n/size*price + n%size*t.PerDraw
}

// DrawsForTokens returns how many draws a balance pays for.
// Bundles are bought while they are cheaper per draw; the rest go single.
func (t Token) DrawsForTokens(tokens int) int {
	if tokens <= 0 || t.PerDraw <= 0 {
		return 0
	}
	draws := 0
	if size, price := t.bundle(); size > 1 && price > 0 && price < size*t.PerDraw {
		draws = tokens / price * size
		tokens %= price
	}
	return draws + tokens/t.PerDraw
}
