package validation

import (
	"strings"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

const maskPrefix = "****"

// EncodeMaskedNumber applies one keystroke's worth of input to the masked
// account number field. previous is the current field value, raw is what the
// user has typed. Input longer than the masked length is rejected and previous
// is returned. The first four positions always render as '*'; only ASCII
// digits survive after them.
func EncodeMaskedNumber(previous, raw string) string {
	runes := []rune(raw)
	if len(runes) > models.MaskedAccountNumberLength {
		return previous
	}
	if len(runes) <= models.MaskedAccountNumberVisible {
		return strings.Repeat("*", len(runes))
	}

	var b strings.Builder
	b.WriteString(maskPrefix)
	for _, r := range runes[models.MaskedAccountNumberVisible:] {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateMaskedNumber checks the ****XXXX shape.
func ValidateMaskedNumber(s string) error {
	fail := func(msg string) error {
		return &FieldError{Field: "account_number_masked", Message: msg, Err: ErrMaskedNumberInvalid}
	}

	switch {
	case s == "":
		return fail("Account number is required")
	case len([]rune(s)) != models.MaskedAccountNumberLength:
		return fail("Must be 8 characters (****XXXX)")
	case !strings.HasPrefix(s, maskPrefix):
		return fail("Must start with ****")
	}
	for _, r := range s[len(maskPrefix):] {
		if r < '0' || r > '9' {
			return fail("Last 4 characters must be digits")
		}
	}
	return nil
}
