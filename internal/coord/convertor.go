package coord

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is returned for missing points, unusable coefficient
	// rows and non-finite coordinates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBandExhausted means no band matched a value. Clamping makes this
	// unreachable for finite input; seeing it is a bug in the caller.
	ErrBandExhausted = errors.New("no coefficient band matched")
)

// Evaluate applies a band's correction polynomial to a raw coordinate pair.
// Both outputs take the sign of the corresponding input.
func Evaluate(lng, lat float64, row *CoefficientRow) (float64, float64, error) {
	if row == nil {
		return 0, 0, errors.Wrap(ErrInvalidInput, "nil coefficient row")
	}
	if row[9] == 0 {
		return 0, 0, errors.Wrap(ErrInvalidInput, "coefficient row has zero divisor")
	}

	// Explicit float64 conversions prevent fused multiply-add.
	outLng := row[0] + float64(row[1]*math.Abs(lng))
	c := math.Abs(lat) / row[9]
	outLat := row[2] +
		float64(row[3]*c) +
		float64(row[4]*c*c) +
		float64(row[5]*c*c*c) +
		float64(row[6]*c*c*c*c) +
		float64(row[7]*c*c*c*c*c) +
		float64(row[8]*c*c*c*c*c*c)

	if lng < 0 {
		outLng = -outLng
	}
	if lat < 0 {
		outLat = -outLat
	}
	return outLng, outLat, nil
}

// roundTo rounds v to n decimal places the way the provider does: the
// nearest n-digit decimal to the exact binary value, ties to even.
func roundTo(v float64, n int) float64 {
	if !finite(v) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', n, 64), 64)
	if err != nil {
		return v
	}
	return r
}
