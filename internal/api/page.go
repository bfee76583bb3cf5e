package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// Page is a list response. The API returns either a bare array or a
// paginated {count, next, previous, results} envelope; both decode here.
type Page[T any] struct {
	Count    int
	Next     string
	Previous string
	Results  []T
}

type pageEnvelope[T any] struct {
	Count    *int    `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// UnmarshalJSON accepts both list shapes. A bare array's count is its length.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*p = Page[T]{Results: []T{}}
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("failed to decode list: %w", err)
		}
		*p = Page[T]{Count: len(items), Results: items}
		return nil
	}

	var env pageEnvelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return fmt.Errorf("failed to decode page: %w", err)
	}
	out := Page[T]{Results: env.Results}
	if out.Results == nil {
		out.Results = []T{}
	}
	if env.Count != nil {
		out.Count = *env.Count
	} else {
		out.Count = len(out.Results)
	}
	if env.Next != nil {
		out.Next = *env.Next
	}
	if env.Previous != nil {
		out.Previous = *env.Previous
	}
	*p = out
	return nil
}

// HasNext reports whether the API advertised another page.
func (p Page[T]) HasNext() bool { return p.Next != "" }

// query builds url.Values, skipping empty values the way the list filters
// are sent.
type query url.Values

func (q query) str(key, value string) {
	if value != "" {
		url.Values(q).Set(key, value)
	}
}

func (q query) id(key string, id *uuid.UUID) {
	if id != nil && *id != uuid.Nil {
		url.Values(q).Set(key, id.String())
	}
}

func (q query) boolean(key string, v *bool) {
	if v != nil {
		url.Values(q).Set(key, strconv.FormatBool(*v))
	}
}

func (q query) integer(key string, v int) {
	if v > 0 {
		url.Values(q).Set(key, strconv.Itoa(v))
	}
}

func (q query) date(key string, d models.Date) {
	if !d.IsZero() {
		url.Values(q).Set(key, d.String())
	}
}

func (q query) amount(key string, v *decimal.Decimal) {
	if v != nil {
		url.Values(q).Set(key, v.String())
	}
}

func (q query) values() url.Values { return url.Values(q) }
