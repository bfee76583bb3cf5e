package validation

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

func drawBalance(t *rapid.T) decimal.Decimal {
	cents := rapid.Int64Range(-2_000_000_000, 2_000_000_000).Draw(t, "cents")
	return decimal.New(cents, -2)
}

func TestValidateBalanceNonCreditProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		accType := rapid.SampledFrom([]models.AccountType{
			models.AccountTypeCurrent, models.AccountTypeSavings, models.AccountTypeISA,
		}).Draw(t, "type")
		b := drawBalance(t)

		wantFail := b.IsNegative() || b.GreaterThan(MaxBalance)
		if got := ValidateBalance(b, accType) != nil; got != wantFail {
			t.Fatalf("ValidateBalance(%s, %s) failed=%v, want %v", b, accType, got, wantFail)
		}
	})
}

func TestValidateBalanceCreditProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		b := drawBalance(t)

		wantFail := b.IsPositive() || b.LessThan(OverdraftLimit)
		if got := ValidateBalance(b, models.AccountTypeCredit) != nil; got != wantFail {
			t.Fatalf("ValidateBalance(%s, credit) failed=%v, want %v", b, got, wantFail)
		}
	})
}

func TestValidateBalanceOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance string
		accType models.AccountType
		want    error
	}{
		{name: "negative current", balance: "-0.01", accType: models.AccountTypeCurrent, want: ErrNegativeBalanceNotAllowed},
		{name: "negative current beyond overdraft reports type rule first", balance: "-20000", accType: models.AccountTypeSavings, want: ErrNegativeBalanceNotAllowed},
		{name: "positive credit", balance: "0.01", accType: models.AccountTypeCredit, want: ErrPositiveCreditBalance},
		{name: "credit beyond overdraft", balance: "-10000.01", accType: models.AccountTypeCredit, want: ErrOverdraftLimitExceeded},
		{name: "credit at overdraft limit", balance: "-10000", accType: models.AccountTypeCredit},
		{name: "too large", balance: "10000000", accType: models.AccountTypeISA, want: ErrBalanceTooLarge},
		{name: "at maximum", balance: "9999999.99", accType: models.AccountTypeCurrent},
		{name: "zero credit", balance: "0", accType: models.AccountTypeCredit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateBalance(decimal.RequireFromString(tt.balance), tt.accType)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBalanceMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Overdraft limit cannot exceed £10,000", BalanceMessage(ErrOverdraftLimitExceeded))
	require.Equal(t, "", BalanceMessage(nil))
}

func TestCleanBalanceInput(t *testing.T) {
	t.Parallel()

	require.Equal(t, "-1234.56", CleanBalanceInput("-£1,234.56"))
	require.Equal(t, "", CleanBalanceInput("abc"))
}

var maskedShape = regexp.MustCompile(`^\*{0,4}[0-9]{0,4}$`)

func TestEncodeMaskedNumberKeystrokeProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOf(rapid.SampledFrom([]string{
			"0", "4", "9", "a", "*", " ", "é", "-", "\b",
		})).Draw(t, "keys")

		value := ""
		for _, k := range keys {
			raw := value + k
			if k == "\b" {
				r := []rune(value)
				if len(r) == 0 {
					continue
				}
				raw = string(r[:len(r)-1])
			}
			value = EncodeMaskedNumber(value, raw)

			if !maskedShape.MatchString(value) {
				t.Fatalf("value %q does not match masked shape", value)
			}
			if len([]rune(value)) > models.MaskedAccountNumberLength {
				t.Fatalf("value %q longer than %d", value, models.MaskedAccountNumberLength)
			}
		}
	})
}

func TestEncodeMaskedNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		previous string
		raw      string
		want     string
	}{
		{name: "first keystroke masked", previous: "", raw: "1", want: "*"},
		{name: "four keystrokes masked", previous: "***", raw: "***7", want: "****"},
		{name: "digits after mask kept", previous: "****", raw: "****1", want: "****1"},
		{name: "non-digits dropped", previous: "****1", raw: "****1x", want: "****1"},
		{name: "pasted number", previous: "", raw: "12345678", want: "****5678"},
		{name: "too long rejected", previous: "****5678", raw: "****56789", want: "****5678"},
		{name: "emptied", previous: "*", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, EncodeMaskedNumber(tt.previous, tt.raw))
		})
	}
}

func FuzzEncodeMaskedNumber(f *testing.F) {
	f.Add("", "1234")
	f.Add("****", "****12ab")
	f.Add("****1234", "****12345")
	f.Add("", "日本語テキスト")

	f.Fuzz(func(t *testing.T, previous, raw string) {
		prev := EncodeMaskedNumber("", previous)
		got := EncodeMaskedNumber(prev, raw)
		if !maskedShape.MatchString(got) {
			t.Fatalf("EncodeMaskedNumber(%q, %q) = %q", prev, raw, got)
		}
	})
}

func TestValidateMaskedNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in  string
		msg string
	}{
		{in: "", msg: "Account number is required"},
		{in: "****123", msg: "Must be 8 characters (****XXXX)"},
		{in: "1234****", msg: "Must start with ****"},
		{in: "****12a4", msg: "Last 4 characters must be digits"},
		{in: "****1234"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			err := ValidateMaskedNumber(tt.in)
			if tt.msg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrMaskedNumberInvalid)
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, "account_number_masked", fe.Field)
			require.Equal(t, tt.msg, fe.Message)
		})
	}
}

func TestProjectTransactionImpact(t *testing.T) {
	t.Parallel()

	current := models.Account{Type: models.AccountTypeCurrent, Currency: models.CurrencyGBP, CurrentBalance: decimal.RequireFromString("50.00")}

	t.Run("overspend on current account blocks", func(t *testing.T) {
		t.Parallel()
		impact := ProjectTransactionImpact(current, models.TransactionTypeExpense, decimal.RequireFromString("75.00"))
		require.True(t, impact.Applicable)
		require.True(t, decimal.RequireFromString("-25.00").Equal(impact.NewBalance))
		require.Equal(t, SeverityBlocking, impact.Severity)
		require.ErrorIs(t, impact.Err(), ErrInsufficientFunds)
		require.Equal(t, "Warning: This transaction will result in a negative balance of -£25.00. Current balance: £50.00", impact.Message())
	})

	t.Run("low balance warns", func(t *testing.T) {
		t.Parallel()
		impact := ProjectTransactionImpact(current, models.TransactionTypeExpense, decimal.RequireFromString("10"))
		require.Equal(t, SeverityWarning, impact.Severity)
		require.NoError(t, impact.Err())
		require.Equal(t, "Note: This will leave a low balance of £40.00", impact.Message())
	})

	t.Run("healthy balance is fine", func(t *testing.T) {
		t.Parallel()
		rich := current
		rich.CurrentBalance = decimal.NewFromInt(1000)
		impact := ProjectTransactionImpact(rich, models.TransactionTypeExpense, decimal.NewFromInt(10))
		require.Equal(t, SeverityOK, impact.Severity)
		require.Empty(t, impact.Message())
	})

	t.Run("credit accounts are not projected", func(t *testing.T) {
		t.Parallel()
		credit := models.Account{Type: models.AccountTypeCredit, CurrentBalance: decimal.RequireFromString("-500.00")}
		impact := ProjectTransactionImpact(credit, models.TransactionTypeExpense, decimal.NewFromInt(100))
		require.False(t, impact.Applicable)
		require.NoError(t, impact.Err())
		require.NoError(t, ValidateBalance(credit.CurrentBalance, credit.Type))
	})

	t.Run("income is not projected", func(t *testing.T) {
		t.Parallel()
		impact := ProjectTransactionImpact(current, models.TransactionTypeIncome, decimal.NewFromInt(100))
		require.False(t, impact.Applicable)
	})
}

func TestComputeEndDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start  string
		period models.PeriodType
		want   string
	}{
		{start: "2024-01-31", period: models.PeriodMonthly, want: "2024-02-29"},
		{start: "2023-01-31", period: models.PeriodMonthly, want: "2023-02-28"},
		{start: "2024-03-01", period: models.PeriodMonthly, want: "2024-03-31"},
		{start: "2024-01-15", period: models.PeriodMonthly, want: "2024-01-31"},
		{start: "2024-12-01", period: models.PeriodMonthly, want: "2024-12-31"},
		{start: "2024-12-31", period: models.PeriodMonthly, want: "2024-12-31"},
		{start: "2024-07-31", period: models.PeriodMonthly, want: "2024-07-31"},
		{start: "2024-01-01", period: models.PeriodQuarterly, want: "2024-03-31"},
		{start: "2024-11-30", period: models.PeriodQuarterly, want: "2025-02-28"},
		{start: "2024-01-01", period: models.PeriodYearly, want: "2024-12-31"},
		{start: "2024-02-29", period: models.PeriodYearly, want: "2025-02-28"},
		{start: "2024-12-28", period: models.PeriodWeekly, want: "2025-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.start+" "+string(tt.period), func(t *testing.T) {
			t.Parallel()
			got, err := ComputeEndDate(models.MustParseDate(tt.start), tt.period)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}

	t.Run("unknown period", func(t *testing.T) {
		t.Parallel()
		_, err := ComputeEndDate(models.MustParseDate("2024-01-01"), "daily")
		require.ErrorIs(t, err, ErrUnknownPeriod)
	})
}

func drawDate(t *rapid.T, label string) models.Date {
	offset := rapid.IntRange(0, 200*366).Draw(t, label)
	return models.NewDate(1950, time.January, 1).AddDays(offset)
}

func TestComputeEndDateWeeklyProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		d := drawDate(t, "start")
		got, err := ComputeEndDate(d, models.PeriodWeekly)
		if err != nil {
			t.Fatal(err)
		}
		if d.DaysUntil(got) != 6 {
			t.Fatalf("weekly end of %s is %s", d, got)
		}
	})
}

func TestFindOverlap(t *testing.T) {
	t.Parallel()

	groceries := uuid.New()
	january := models.Budget{
		ID: uuid.New(), CategoryID: groceries, Name: "January Groceries", IsActive: true,
		StartDate: models.MustParseDate("2024-01-01"), EndDate: models.MustParseDate("2024-01-31"),
	}

	candidate := func(start, end string) OverlapCandidate {
		return OverlapCandidate{CategoryID: groceries, Start: models.MustParseDate(start), End: models.MustParseDate(end)}
	}

	t.Run("disjoint ranges", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, FindOverlap(candidate("2024-02-01", "2024-02-28"), []models.Budget{january}))
	})

	t.Run("shared boundary day overlaps", func(t *testing.T) {
		t.Parallel()
		got := FindOverlap(candidate("2024-01-31", "2024-02-28"), []models.Budget{january})
		require.NotNil(t, got)
		require.Equal(t, january.ID, got.ID)
	})

	t.Run("candidate containing existing", func(t *testing.T) {
		t.Parallel()
		require.NotNil(t, FindOverlap(candidate("2023-12-01", "2024-03-01"), []models.Budget{january}))
	})

	t.Run("inactive and other categories ignored", func(t *testing.T) {
		t.Parallel()
		inactive := january
		inactive.IsActive = false
		other := january
		other.CategoryID = uuid.New()
		require.Nil(t, FindOverlap(candidate("2024-01-10", "2024-01-20"), []models.Budget{inactive, other}))
	})

	t.Run("editing excludes itself", func(t *testing.T) {
		t.Parallel()
		c := candidate("2024-01-01", "2024-01-31")
		c.ExcludeBudgetID = january.ID
		require.Nil(t, FindOverlap(c, []models.Budget{january}))
	})

	t.Run("first match in input order", func(t *testing.T) {
		t.Parallel()
		second := january
		second.ID = uuid.New()
		got := FindOverlap(candidate("2024-01-05", "2024-01-06"), []models.Budget{january, second})
		require.Equal(t, january.ID, got.ID)
	})
}

func TestFindOverlapProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		category := uuid.New()
		bs := drawDate(t, "existingStart")
		be := bs.AddDays(rapid.IntRange(0, 400).Draw(t, "existingLen"))
		cs := drawDate(t, "candidateStart")
		ce := cs.AddDays(rapid.IntRange(0, 400).Draw(t, "candidateLen"))

		existing := []models.Budget{{ID: uuid.New(), CategoryID: category, IsActive: true, StartDate: bs, EndDate: be}}
		got := FindOverlap(OverlapCandidate{CategoryID: category, Start: cs, End: ce}, existing)

		sharesDay := !cs.After(be) && !ce.Before(bs)
		if (got != nil) != sharesDay {
			t.Fatalf("candidate %s..%s vs %s..%s: overlap=%v want %v", cs, ce, bs, be, got != nil, sharesDay)
		}
	})
}

func TestOverlapError(t *testing.T) {
	t.Parallel()

	err := error(&OverlapError{Budget: models.Budget{Name: "Food"}})
	require.ErrorIs(t, err, ErrBudgetOverlap)
	require.Contains(t, err.Error(), "(Food)")

	var oe *OverlapError
	require.True(t, errors.As(err, &oe))
	require.True(t, strings.HasPrefix(oe.Warning(), "Warning: An active budget"))
}

func TestAvailableCategoriesProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		types := rapid.SliceOf(rapid.SampledFrom([]models.CategoryType{
			models.CategoryTypeIncome, models.CategoryTypeExpense,
		})).Draw(t, "types")
		cats := make([]models.Category, len(types))
		for i, ct := range types {
			cats[i] = models.Category{ID: uuid.New(), Type: ct}
		}

		all := AvailableCategories(cats, models.TransactionTypeTransfer)
		if len(all) != len(cats) {
			t.Fatalf("transfer returned %d of %d categories", len(all), len(cats))
		}
		for i := range cats {
			if all[i].ID != cats[i].ID {
				t.Fatalf("transfer reordered categories at %d", i)
			}
		}

		income := AvailableCategories(cats, models.TransactionTypeIncome)
		want := 0
		for _, c := range cats {
			if c.Type == models.CategoryTypeIncome {
				want++
			}
		}
		if len(income) != want {
			t.Fatalf("income returned %d categories, want %d", len(income), want)
		}
		for _, c := range income {
			if c.Type != models.CategoryTypeIncome {
				t.Fatalf("income filter returned %s category", c.Type)
			}
		}
	})
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	errs := FieldErrors{}
	require.NoError(t, errs.Err())

	errs.Add("budget_name", "Budget name is required")
	errs.Add("category", "Category is required")
	errs.Merge(map[string]string{"category": "Invalid pk", "non_field": "boom"})

	require.Equal(t, "Invalid pk", errs["category"])
	require.Equal(t, "Budget name is required", errs["budget_name"])
	require.Equal(t, []string{"budget_name", "category", "non_field"}, errs.Fields())
	require.EqualError(t, errs.Err(), "budget_name: Budget name is required; category: Invalid pk; non_field: boom")
	require.True(t, errs.Has("non_field"))
}

func TestFieldErrorsMergeIntoNil(t *testing.T) {
	t.Parallel()

	var errs FieldErrors
	merged := errs.Merge(map[string]string{"amount": "Ensure this value is greater than 0"})
	require.Equal(t, FieldErrors{"amount": "Ensure this value is greater than 0"}, merged)

	require.Empty(t, errs.Merge(nil))
}
