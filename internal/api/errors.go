package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/validation"
)

// Banner messages used when the API gives nothing more specific.
const (
	GenericErrorMessage    = "An error occurred. Please try again."
	ConnectionErrorMessage = "An error occurred. Please check your connection."
)

// Kind classifies a failed API call.
type Kind int

const (
	// KindField means the API rejected one or more named fields.
	KindField Kind = iota
	// KindGeneral is a failure with a single banner message.
	KindGeneral
	// KindNetwork means no response was received.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindGeneral:
		return "general"
	case KindNetwork:
		return "network"
	}
	return "unknown"
}

// Error is the single error type returned for failed API calls.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && len(e.Fields) > 0:
		return fmt.Sprintf("%s (%s)", e.Message, e.fieldSummary())
	case e.Message != "":
		return e.Message
	case len(e.Fields) > 0:
		return e.fieldSummary()
	}
	return GenericErrorMessage
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) fieldSummary() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// MergeInto copies the remote field messages over local ones and returns the
// merged set. Local messages for fields the API did not mention are kept.
func (e *Error) MergeInto(local validation.FieldErrors) validation.FieldErrors {
	if local == nil {
		local = validation.FieldErrors{}
	}
	return local.Merge(e.Fields)
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// BannerMessage returns the one-line message to show for err: the API's
// general message if any, the connection message for network failures, or
// fallback.
func BannerMessage(err error, fallback string) string {
	apiErr, ok := AsError(err)
	if !ok {
		return fallback
	}
	switch {
	case apiErr.Kind == KindNetwork:
		return ConnectionErrorMessage
	case apiErr.Message != "":
		return apiErr.Message
	}
	return fallback
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: ConnectionErrorMessage, Err: err}
}

// classify turns an error response body into an *Error. Object payloads
// split "error", "detail" and "details" into the message and every other key
// into a field error; anything else is a general failure.
func classify(status int, body []byte) *Error {
	trimmed := bytes.TrimSpace(body)

	var payload map[string]json.RawMessage
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Unmarshal(trimmed, &payload) != nil {
		return &Error{Kind: KindGeneral, Status: status, Message: GenericErrorMessage}
	}

	out := &Error{Kind: KindGeneral, Status: status}
	var details string
	for key, raw := range payload {
		switch key {
		case "error", "detail":
		case "details":
			var list []string
			if json.Unmarshal(raw, &list) == nil {
				details = strings.Join(list, ", ")
			} else {
				details = firstString(raw)
			}
		default:
			if out.Fields == nil {
				out.Fields = make(map[string]string)
			}
			out.Fields[key] = firstString(raw)
		}
	}

	if msg, ok := lookupString(payload, "error"); ok {
		out.Message = msg
	} else if msg, ok := lookupString(payload, "detail"); ok {
		out.Message = msg
	} else {
		out.Message = details
	}

	if len(out.Fields) > 0 {
		out.Kind = KindField
	}
	if out.Message == "" && len(out.Fields) == 0 {
		out.Message = GenericErrorMessage
	}
	return out
}

func lookupString(payload map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := payload[key]
	if !ok {
		return "", false
	}
	msg := firstString(raw)
	return msg, msg != ""
}

// firstString renders a JSON value as a message: strings as-is, arrays by
// their first element, anything else as compact JSON.
func firstString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		if len(list) == 0 {
			return ""
		}
		return firstString(list[0])
	}
	var buf bytes.Buffer
	if json.Compact(&buf, raw) == nil {
		return buf.String()
	}
	return string(raw)
}
