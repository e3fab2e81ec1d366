package odds

import "testing"

func BenchmarkCalculateTwoBannersTarget1(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Calculate(twoBanners, 170)
	}
}

func BenchmarkCalculateTwoBannersTarget10(b *testing.B) {
	banners := []Banner{
		{Target: 10, Subrate: 0.35, BonusPulls: 240},
		{Target: 10, Subrate: 0.5},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Calculate(banners, 1700)
	}
}

func BenchmarkCalculateFourBannersFocus(b *testing.B) {
	banners := []Banner{
		{Target: 10, Subrate: 0.35, BonusPulls: 240},
		{Target: 10, Subrate: 0.5, HasFocus: true},
		{Target: 10, Subrate: 0.2, BonusPulls: 480, HasFocus: true},
		{Target: 10, Subrate: 0.4},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Calculate(banners, 4000)
	}
}
