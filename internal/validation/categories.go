package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// AvailableCategories returns the categories a transaction of txType may use.
// Transfers may use any category, so all is returned unchanged.
func AvailableCategories(all []models.Category, txType models.TransactionType) []models.Category {
	if txType == models.TransactionTypeTransfer {
		return all
	}
	out := make([]models.Category, 0, len(all))
	for _, c := range all {
		if string(c.Type) == string(txType) {
			out = append(out, c)
		}
	}
	return out
}

// CategoryAllowed reports whether category may be used for txType.
func CategoryAllowed(c models.Category, txType models.TransactionType) bool {
	return txType == models.TransactionTypeTransfer || string(c.Type) == string(txType)
}

// FindDuplicateCategory returns the active category of the same type whose
// name matches name case-insensitively, skipping editingID.
func FindDuplicateCategory(existing []models.Category, name string, catType models.CategoryType, editingID uuid.UUID) *models.Category {
	name = strings.TrimSpace(name)
	for i := range existing {
		c := &existing[i]
		if !c.IsActive || c.Type != catType {
			continue
		}
		if editingID != uuid.Nil && c.ID == editingID {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// CategoryInput is the category form.
type CategoryInput struct {
	Name string
	Type models.CategoryType
}

// Validate checks the form against the user's existing categories.
// editingID is the category being edited, or uuid.Nil for a new one.
func (in CategoryInput) Validate(existing []models.Category, editingID uuid.UUID) FieldErrors {
	errs := FieldErrors{}
	name := strings.TrimSpace(in.Name)

	switch {
	case name == "":
		errs.Add("category_name", "Category name is required")
	case utf8.RuneCountInString(name) < models.MinNameLength:
		errs.Add("category_name", "Category name must be at least 2 characters")
	case utf8.RuneCountInString(in.Name) > models.MaxCategoryNameLength:
		errs.Add("category_name", "Category name cannot exceed 50 characters")
	default:
		if fe := CheckDuplicateCategory(existing, name, in.Type, editingID); fe != nil {
			errs.Add(fe.Field, fe.Message)
		}
	}

	if !in.Type.Valid() {
		errs.Add("category_type", "Invalid category type")
	}
	return errs
}

// CheckDuplicateCategory returns a field error wrapping ErrDuplicateCategory
// when name clashes with an existing category, or nil.
func CheckDuplicateCategory(existing []models.Category, name string, catType models.CategoryType, editingID uuid.UUID) *FieldError {
	dup := FindDuplicateCategory(existing, name, catType, editingID)
	if dup == nil {
		return nil
	}
	return &FieldError{
		Field:   "category_name",
		Message: fmt.Sprintf("You already have a %s category named \"%s\"", catType, dup.Name),
		Err:     ErrDuplicateCategory,
	}
}

// Request returns the trimmed API payload.
func (in CategoryInput) Request() models.CategoryRequest {
	return models.CategoryRequest{Name: strings.TrimSpace(in.Name), Type: in.Type}
}
