package ingredient

import (
	"math"
	"strconv"
	"strings"
)

// Format renders ing in canonical units, e.g. "1/2 cup sugar" becomes
// "142ml sugar". Volume is never converted to mass since densities are not
// modelled. Ingredients without a canonical amount or a name render as Raw.
func Format(ing ScrapedIngredient) string {
	if !ing.Formattable() {
		return ing.Raw
	}
	amount, unit, _ := ing.Canonicalize()

	if smaller, ok := unit.SmallerPrefix(); ok && amount < 1.0 {
		amount *= 1000.0
		unit = smaller
	} else if larger, ok := unit.LargerPrefix(); ok && amount > 1000.0 {
		amount /= 1000.0
		unit = larger
	}
	if amount > 10.0 {
		amount = math.Round(amount)
	}

	var b strings.Builder
	if amount == math.Trunc(amount) {
		// Instructions are only appended for whole amounts.
		b.WriteString(strconv.FormatUint(wholeAmount(amount), 10))
		b.WriteString(unit.String())
		b.WriteByte(' ')
		b.WriteString(*ing.Name)
		if ing.Instructions != nil {
			b.WriteString(", ")
			b.WriteString(*ing.Instructions)
		}
		return b.String()
	}
	b.WriteString(strconv.FormatFloat(amount, 'f', -1, 64))
	b.WriteString(unit.String())
	b.WriteByte(' ')
	b.WriteString(*ing.Name)
	return b.String()
}

func (i ScrapedIngredient) String() string {
	return Format(i)
}

// Formattable reports whether Format renders from the parsed fields rather
// than falling back to Raw.
func (i ScrapedIngredient) Formattable() bool {
	_, _, ok := i.Canonicalize()
	return ok && i.Name != nil
}

// wholeAmount saturates at the uint64 bounds instead of relying on the
// implementation-defined float conversion.
func wholeAmount(amount float64) uint64 {
	switch {
	case amount <= 0:
		return 0
	case amount >= math.MaxUint64:
		return math.MaxUint64
	default:
		return uint64(amount)
	}
}
