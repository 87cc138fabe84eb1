package pricing

import (
	"strconv"
	"strings"
)

// AgreementTitle is the first line of every rendered agreement.
const AgreementTitle = "Rental Agreement"

// Render formats a as the printed rental agreement. Lines are separated by
// "\n" and there is no trailing newline.
func Render(a Agreement) string {
	fields := []struct {
		label string
		value string
	}{
		{"Tool code:", a.ToolCode},
		{"Tool type:", a.ToolType},
		{"Tool brand:", a.ToolBrand},
		{"Check out date:", a.CheckoutDate.AgreementString()},
		{"Due date:", a.DueDate.AgreementString()},
		{"Daily rental charge:", FormatCurrency(a.DailyRentalCharge)},
		{"Charge days:", strconv.Itoa(a.ChargeDays)},
		{"Pre-discount charge:", FormatCurrency(a.PreDiscountCharge)},
		{"Discount percent:", FormatPercent(a.DiscountPercent)},
		{"Discount amount:", FormatCurrency(a.DiscountAmount)},
		{"Final charge:", FormatCurrency(a.FinalCharge)},
	}

	lines := make([]string, 0, len(fields)+2)
	lines = append(lines, AgreementTitle, "")
	for _, f := range fields {
		lines = append(lines, f.label+" "+f.value)
	}
	return strings.Join(lines, "\n")
}
