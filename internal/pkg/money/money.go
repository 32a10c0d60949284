// internal/pkg/money/money.go
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultFormat is used when the hosting configuration supplies no
// money display template.
const DefaultFormat = "${{amount}}"

// Format renders an amount in minor currency units (cents) using a
// display template. The template may contain the tokens {{amount}}
// (two decimal places) and {{amount_no_decimals}} (rounded to the
// nearest whole unit). No currency localization happens beyond the
// template itself.
func Format(amount int64, format string) string {
	if format == "" {
		format = DefaultFormat
	}

	units := float64(amount) / 100

	out := strings.ReplaceAll(format, "{{amount}}", fmt.Sprintf("%.2f", units))
	out = strings.ReplaceAll(out, "{{amount_no_decimals}}", strconv.FormatInt(int64(math.Round(units)), 10))

	return out
}
