// Package forms holds the editing state behind each entity form: which
// fields are derived, which choices are still allowed, and what gets reset
// when an input changes.
package forms

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/validation"
)

// TransactionForm tracks the transaction type and the categories it allows.
// The type starts as expense; changing it refilters the category choices
// and drops a selected category that no longer fits.
type TransactionForm struct {
	Input      validation.TransactionInput
	editingID  uuid.UUID
	categories []models.Category
	available  []models.Category
}

// NewTransactionForm starts a blank expense dated today.
func NewTransactionForm(now time.Time, categories []models.Category) *TransactionForm {
	f := &TransactionForm{Input: validation.NewTransactionInput(now)}
	f.SetCategories(categories)
	return f
}

// EditTransactionForm starts a form prefilled from tx.
func EditTransactionForm(tx models.Transaction, categories []models.Category) *TransactionForm {
	f := &TransactionForm{Input: validation.TransactionInputFrom(tx), editingID: tx.ID}
	f.SetCategories(categories)
	return f
}

// IsEdit reports whether the form edits an existing transaction.
func (f *TransactionForm) IsEdit() bool {
	return f.editingID != uuid.Nil
}

// EditingID returns the transaction being edited, or uuid.Nil.
func (f *TransactionForm) EditingID() uuid.UUID {
	return f.editingID
}

// Type returns the current transaction type.
func (f *TransactionForm) Type() models.TransactionType {
	return f.Input.Type
}

// SetType moves the form to t.
func (f *TransactionForm) SetType(t models.TransactionType) error {
	if !t.Valid() {
		return fmt.Errorf("invalid transaction type %q", t)
	}
	f.Input.Type = t
	f.refilter()
	return nil
}

// SetCategories replaces the category list the form chooses from.
func (f *TransactionForm) SetCategories(categories []models.Category) {
	f.categories = categories
	f.refilter()
}

// Available returns the categories the current type may use.
func (f *TransactionForm) Available() []models.Category {
	return f.available
}

// SelectCategory picks a category from the available list.
func (f *TransactionForm) SelectCategory(id uuid.UUID) error {
	for _, c := range f.available {
		if c.ID == id {
			f.Input.CategoryID = id
			return nil
		}
	}
	return fmt.Errorf("category %s is not available for %s transactions", id, f.Input.Type)
}

// Validate checks the form against the selected account.
func (f *TransactionForm) Validate(now time.Time, accounts []models.Account) validation.FieldErrors {
	return f.Input.Validate(now, f.selectedAccount(accounts), f.categories)
}

// Advisory returns the balance warning for the selected account, or "".
func (f *TransactionForm) Advisory(accounts []models.Account) string {
	account := f.selectedAccount(accounts)
	if account == nil {
		return ""
	}
	return f.Input.Impact(*account).Message()
}

func (f *TransactionForm) selectedAccount(accounts []models.Account) *models.Account {
	for i := range accounts {
		if accounts[i].ID == f.Input.AccountID {
			return &accounts[i]
		}
	}
	return nil
}

func (f *TransactionForm) refilter() {
	f.available = validation.AvailableCategories(f.categories, f.Input.Type)
	if f.Input.CategoryID == uuid.Nil {
		return
	}
	for _, c := range f.categories {
		if c.ID == f.Input.CategoryID && validation.CategoryAllowed(c, f.Input.Type) {
			return
		}
	}
	f.Input.CategoryID = uuid.Nil
}
