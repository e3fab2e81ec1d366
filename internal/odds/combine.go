package odds

import (
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// BannerReport is one banner's share of a Report.
type BannerReport struct {
	Banner   Banner
	MaxPulls int     // pulls the banner may use at most
	Reach    float64 // chance the banner alone completes within MaxPulls
}

// Report is the outcome of one multi-banner calculation.
type Report struct {
	Pulls       int // shared pull budget
	Window      int // total pulls, bonus included, that may be spent across banners
	ConvSize    int
	Probability float64
	Banners     []BannerReport
}

// Calculate returns the probability of reaching the target on every banner
// within pulls shared pulls plus each banner's bonus pulls.
func Calculate(banners []Banner, pulls int) (float64, error) {
	r, err := Analyze(banners, pulls)
	if err != nil {
		return 0, err
	}
	return r.Probability, nil
}

// Analyze is Calculate with the per-banner breakdown.
//
// Each banner's distribution is a pmf over pulls spent on it. Their linear
// convolution is the pmf of total pulls spent, computed as a product of real
// FFTs sized to the sum of all allowances so nothing wraps around.
func Analyze(banners []Banner, pulls int) (Report, error) {
	allowances, err := Allowances(banners, pulls)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Pulls:   pulls,
		Window:  pulls - (len(banners) - 1),
		Banners: make([]BannerReport, len(banners)),
	}
	pdists := make([][]float64, len(banners))
	for i, b := range banners {
		pdist, err := Generate(b.Target, allowances[i], b.Subrate, b.HasFocus)
		if err != nil {
			return Report{}, err
		}
		pdists[i] = pdist
		report.ConvSize += allowances[i]
		report.Window += b.BonusPulls
		report.Banners[i] = BannerReport{
			Banner:   b,
			MaxPulls: allowances[i],
			Reach:    floats.Sum(pdist),
		}
	}

	if report.ConvSize == 0 {
		return report, nil
	}

	seq := spectralConvolve(pdists, report.ConvSize)
	// the transform pair is unnormalized; dividing the sum once is the same
	// as dividing every term
	// seq[k] holds totals of k+len(banners) pulls, since each pdist starts at
	// pull 1, so the sum covers totals up to Window+len(banners)-1
	report.Probability = floats.Sum(seq[:min(report.Window, len(seq))]) / float64(report.ConvSize)
	return report, nil
}

// spectralConvolve multiplies the real FFTs of size-length copies of pdists
// and transforms back. The result is the circular convolution of the inputs
// scaled by size; it equals the linear convolution only when size is at
// least the sum of the input lengths. Input terms past size fold onto
// index mod size, as a shorter transform would.
func spectralConvolve(pdists [][]float64, size int) []float64 {
	fft := fourier.NewFFT(size)

	combined := make([]complex128, size/2+1)
	for i := range combined {
		combined[i] = complex(1, 0)
	}

	padded := make([]float64, size)
	coeff := make([]complex128, size/2+1)
	for _, pdist := range pdists {
		clear(padded)
		for i, v := range pdist {
			padded[i%size] += v
		}
		fft.Coefficients(coeff, padded)
		for i, c := range coeff {
			combined[i] *= c
		}
	}

	return fft.Sequence(nil, combined)
}

// MinPulls returns the smallest shared budget, no larger than limit, at which
// the combined probability reaches confidence, along with that probability.
func MinPulls(banners []Banner, confidence float64, limit int) (int, float64, error) {
	if !(confidence > 0 && confidence <= 1) {
		return 0, 0, ErrInvalidConfidence
	}
	if len(banners) == 0 {
		return 0, 0, ErrNoBanners
	}

	// lowest budget that still reserves a pull for every banner
	lo := 0
	for _, b := range banners {
		lo = max(lo, len(banners)-1-b.BonusPulls)
	}
	if limit < lo {
		return 0, 0, ErrUnreachable
	}

	best, err := Calculate(banners, limit)
	if err != nil {
		return 0, 0, err
	}
	if best < confidence {
		return 0, best, ErrUnreachable
	}

	hi := limit
	for lo < hi {
		mid := lo + (hi-lo)/2
		p, err := Calculate(banners, mid)
		if err != nil {
			return 0, 0, err
		}
		if p >= confidence {
			hi, best = mid, p
		} else {
			lo = mid + 1
		}
	}
	return hi, best, nil
}
