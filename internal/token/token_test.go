package token

import "testing"

func TestTokensForDraws(t *testing.T) {
	cases := []struct {
		name string
		tok  Token
		n    int
		want int
	}{
		{"single only", Token{PerDraw: 600}, 7, 4200},
		{"ten draw discount", Token{PerDraw: 160, PerTenDraw: 1500}, 23, 2*1500 + 3*160},
		{"n draw bundle", Token{PerDraw: 300, PerNDraw: 1400, N: 5}, 12, 2*1400 + 2*300},
		{"nothing", Token{PerDraw: 600}, 0, 0},
	}
	for _, tc := range cases {
		if got := tc.tok.TokensForDraws(tc.n); got != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestDrawsForTokens(t *testing.T) {
	tok := Token{PerDraw: 160, PerTenDraw: 1500}
	if got := tok.DrawsForTokens(3000 + 480 + 100); got != 23 {
		t.Fatalf("got %d want 23", got)
	}
	// without a discount the bundle is irrelevant
	flat := Token{PerDraw: 600, PerTenDraw: 6000}
	if got := flat.DrawsForTokens(6599); got != 10 {
		t.Fatalf("got %d want 10", got)
	}
	if got := (Token{}).DrawsForTokens(1000); got != 0 {
		t.Fatalf("free draws should not divide by zero, got %d", got)
	}
	for n := 0; n < 40; n++ {
		if got := tok.DrawsForTokens(tok.TokensForDraws(n)); got != n {
			t.Fatalf("round trip %d -> %d", n, got)
		}
	}
}
