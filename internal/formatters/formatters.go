// Package formatters converts amounts and dates to display strings and back.
package formatters

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// DisplayDateLayout is the UK day/month/year format.
const DisplayDateLayout = "02/01/2006"

// DisplayDateTimeLayout is the UK date and 24h time format.
const DisplayDateTimeLayout = "02/01/2006, 15:04"

var (
	thousand = decimal.NewFromInt(1000)
	million  = decimal.NewFromInt(1000000)
	hundred  = decimal.NewFromInt(100)
)

// FormatCurrency renders amount with the currency symbol, thousands separators
// and two decimals. Negative amounts get a leading minus: -£1,234.50.
// Unknown currencies fall back to their code as the symbol.
func FormatCurrency(amount decimal.Decimal, currency models.Currency) string {
	symbol, ok := models.CurrencySymbols[currency]
	if !ok {
		symbol = string(currency)
	}

	formatted := groupThousands(amount.Abs().StringFixed(2))
	if amount.Round(2).IsNegative() {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// FormatSignedAmount renders amount with an explicit sign: +£10.00 or -£10.00.
func FormatSignedAmount(amount decimal.Decimal, currency models.Currency) string {
	if amount.Round(2).IsNegative() {
		return FormatCurrency(amount, currency)
	}
	return "+" + FormatCurrency(amount, currency)
}

func groupThousands(fixed string) string {
	intPart, frac, _ := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return fixed
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatDate renders d as DD/MM/YYYY, or "" when unset.
func FormatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DisplayDateLayout)
}

// FormatDateTime renders t as DD/MM/YYYY, HH:MM, or "" when unset.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateTimeLayout)
}

// FormatDateForAPI renders d as YYYY-MM-DD, or "" when unset.
func FormatDateForAPI(d models.Date) string {
	return d.String()
}

// ParseDisplayDate accepts DD/MM/YYYY or YYYY-MM-DD.
func ParseDisplayDate(s string) (models.Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DisplayDateLayout, s); err == nil {
		return models.DateOf(t), nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid display date %q", s)
	}
	return d, nil
}

// DaysAgo returns the calendar day n days before now.
func DaysAgo(now time.Time, days int) models.Date {
	return models.DateOf(now).AddDays(-days)
}

// MonthStart returns the first day of now's month.
func MonthStart(now time.Time) models.Date {
	return models.NewDate(now.Year(), now.Month(), 1)
}

// MonthEnd returns the last day of now's month.
func MonthEnd(now time.Time) models.Date {
	return models.NewDate(now.Year(), now.Month()+1, 0)
}

// FormatPercentage renders value with the given number of decimals and a % sign.
func FormatPercentage(value decimal.Decimal, decimals int32) string {
	return value.StringFixed(decimals) + "%"
}

// FormatAccountType returns the display label of an account type.
func FormatAccountType(t models.AccountType) string {
	switch t {
	case models.AccountTypeCurrent:
		return "Current Account"
	case models.AccountTypeSavings:
		return "Savings Account"
	case models.AccountTypeISA:
		return "ISA"
	case models.AccountTypeCredit:
		return "Credit Card"
	}
	return string(t)
}

// PercentageChange returns the change from previous to current as a percentage
// of |previous|. A zero previous value yields zero.
func PercentageChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(hundred)
}

// FormatLargeNumber abbreviates thousands and millions: 1.2K, 3.4M.
func FormatLargeNumber(num decimal.Decimal) string {
	if num.GreaterThanOrEqual(million) {
		return num.Div(million).StringFixed(1) + "M"
	}
	if num.GreaterThanOrEqual(thousand) {
		return num.Div(thousand).StringFixed(1) + "K"
	}
	return num.String()
}
