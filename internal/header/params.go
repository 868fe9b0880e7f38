package header

// DefaultParams returns the header detection parameters used for typical
// form screenshots with a solid-color branding band.
func DefaultParams() Params {
	return Params{
		SampleHeight:       20,
		ScanLimit:          0.25, // Headers never extend past a quarter of the screen
		ColorTolerance:     30,   // Summed over R, G and B
		SafetyMargin:       10,
		MinOffset:          30,
		MaxOffsetRatio:     0.3,
		FallbackPercentage: 0.12,
	}
}

// WithFallbackPercentage returns a copy of params with a different fallback
// crop fraction.
func (p Params) WithFallbackPercentage(pct float64) Params {
	p.FallbackPercentage = pct
	return p
}

// WithColorTolerance returns a copy of params with a different row/header
// color difference threshold.
func (p Params) WithColorTolerance(tol float64) Params {
	p.ColorTolerance = tol
	return p
}
