package pricing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds to cents, halves away from zero (1.005 -> 1.01).
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// PreDiscountCharge is chargeDays x dailyRate, rounded to cents.
func PreDiscountCharge(chargeDays int, dailyRate decimal.Decimal) decimal.Decimal {
	return Round2(dailyRate.Mul(decimal.NewFromInt(int64(chargeDays))))
}

// DiscountAmount is percent of preDiscount, rounded to cents.
func DiscountAmount(preDiscount decimal.Decimal, discountPercent int) decimal.Decimal {
	return Round2(preDiscount.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred))
}

// FinalCharge is preDiscount minus discount, rounded to cents.
func FinalCharge(preDiscount, discount decimal.Decimal) decimal.Decimal {
	return Round2(preDiscount.Sub(discount))
}

// FormatCurrency renders amount in en-US dollars, e.g. $1,234.50.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

// FormatPercent renders n as "n%".
func FormatPercent(n int) string {
	return strconv.Itoa(n) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
