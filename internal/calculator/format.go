package calculator

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// fixed renders v with the given number of decimal places, rounding the
// shortest decimal form of v half up: 1.005 renders "1.01" where
// a binary-exact toFixed would give "1.00". Overflowed
// products of large inputs are rendered by strconv since decimal cannot
// represent them.
func fixed(v float64, places int32) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func btoa(b bool) string {
	return strconv.FormatBool(b)
}
