package ingredient

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrParsingAmount = errors.New("parsing amount")

type AmountError struct {
	Token string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("parsing amount from %q", e.Token)
}

func (e *AmountError) Unwrap() error {
	return ErrParsingAmount
}

// vulgarFractions maps the recognised glyphs to truncated decimals, not exact
// rationals: ⅓ is 0.33.
var vulgarFractions = map[string]float64{
	"¼": 0.25,
	"½": 0.5,
	"¾": 0.75,
	"⅓": 0.33,
	"⅔": 0.66,
	"⅛": 0.125,
	"⅜": 0.375,
	"⅝": 0.625,
	"⅞": 0.875,
	"⅙": 0.166,
	"⅚": 0.833,
	"⅕": 0.2,
	"⅖": 0.4,
	"⅗": 0.6,
	"⅘": 0.8,
}

// ParseAmount converts a quantity token ("2", "0.8", "1/2", "½") into a
// strictly positive float. Zero is a failure, not an amount of zero.
func ParseAmount(token string) (float64, error) {
	s := strings.TrimSpace(token)
	if v, ok := vulgarFractions[s]; ok {
		return v, nil
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if !positive(v) {
			return 0, &AmountError{Token: token}
		}
		return v, nil
	}

	num, denom, ok := strings.Cut(s, "/")
	if !ok {
		return 0, &AmountError{Token: token}
	}
	n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
	d, errD := strconv.ParseFloat(strings.TrimSpace(denom), 64)
	if errN != nil || errD != nil || !positive(n) || !positive(d) {
		return 0, &AmountError{Token: token}
	}
	return n / d, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
