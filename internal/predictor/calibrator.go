package predictor

import "github.com/shopspring/decimal"

// Calibrate converts two raw scores into a percentage pair that sums to
// 100.00 within rounding. A zero score sum yields an exact 50/50 split.
// When applyCap is set (thin sample on either side), each percentage is
// compressed into the [capMin, capMax] confidence band via a linear map
// and the pair renormalized, so no side is reported above capMax or below
// capMin when the data is insufficient to justify it.
func Calibrate(s1, s2 float64, applyCap bool, capMin, capMax float64) (float64, float64) {
	if s1+s2 == 0 {
		return 50.0, 50.0
	}

	p1 := s1 / (s1 + s2) * 100.0
	p2 := 100.0 - p1

	if applyCap {
		c1 := capInto(p1, capMin, capMax)
		c2 := capInto(p2, capMin, capMax)
		total := c1 + c2
		if total == 0 {
			return 50.0, 50.0
		}
		p1 = c1 / total * 100.0
		p2 = c2 / total * 100.0
	}

	return roundPercent(p1), roundPercent(p2)
}

func capInto(pct, capMin, capMax float64) float64 {
	return capMin + (pct/100.0)*(capMax-capMin)
}

func roundPercent(pct float64) float64 {
	return decimal.NewFromFloat(pct).Round(2).InexactFloat64()
}

// impliedOdds converts a win percentage to decimal odds, the reciprocal
// representation bettors expect. Zero probabilities have no finite odds.
func impliedOdds(pct float64) *decimal.Decimal {
	if pct <= 0 {
		return nil
	}
	odds := decimal.NewFromInt(100).Div(decimal.NewFromFloat(pct)).Round(2)
	return &odds
}
