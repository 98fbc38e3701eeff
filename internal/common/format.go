package common

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round rounds half away from zero to the given decimal places. Analysis
// values stay unrounded; only presentation calls this.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// FormatMoney renders a value as $1,234.56
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + groupThousands(d.StringFixed(2))
}

// FormatSignedMoney renders a value with an explicit + for gains
func FormatSignedMoney(v float64) string {
	if Round(v, 2) > 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatPct renders a percentage with two decimals
func FormatPct(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2) + "%"
}

// FormatSignedPct renders a percentage with an explicit + for gains
func FormatSignedPct(v float64) string {
	if Round(v, 2) > 0 {
		return "+" + FormatPct(v)
	}
	return FormatPct(v)
}

// FormatRatio renders a 0..1 ratio with four decimals
func FormatRatio(v float64) string {
	return decimal.NewFromFloat(v).Round(4).StringFixed(4)
}

func groupThousands(fixed string) string {
	intPart, frac, _ := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return fixed
	}
	var sb strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		sb.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}
