// Package validation holds the stateless field validators used before any
// mutation. Every validator returns a human-readable message for the first
// failing check, or an empty string when the input is valid; there is no
// multi-error aggregation.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinPasswordLength     = 8
	MaxUsernameLength     = 80
	MaxEmailLength        = 120
	MaxCompanyNameLength  = 200
	MaxCustomerNameLength = 200
	MaxDescriptionLength  = 500
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// present reports whether a decoded JSON value counts as provided and
// non-empty. Zero numbers, empty strings/lists/objects and false all count as
// missing, so "field": 0 still yields a required error.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	}
	return true
}

// Required checks that each listed field is present and non-empty.
func Required(data map[string]any, fields ...string) string {
	for _, f := range fields {
		if !present(data[f]) {
			return f + " is required"
		}
	}
	return ""
}

func Email(email string) string {
	if email == "" {
		return "Email is required"
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return fmt.Sprintf("Email must be %d characters or less", MaxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return "Invalid email format"
	}
	return ""
}

func Password(password string) string {
	if password == "" {
		return "Password is required"
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength)
	}
	return ""
}

func Username(username string) string {
	if username == "" {
		return "Username is required"
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Sprintf("Username must be %d characters or less", MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return "Username can only contain letters, numbers, hyphens, and underscores"
	}
	return ""
}

// DateString checks for a strict YYYY-MM-DD date. Invalid calendar dates
// (month 13, Feb 30) are rejected.
func DateString(v any, fieldName string) string {
	if !present(v) {
		return fieldName + " is required"
	}
	s, ok := v.(string)
	if !ok {
		return fieldName + " must be in YYYY-MM-DD format"
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fieldName + " must be in YYYY-MM-DD format"
	}
	return ""
}

// Number coerces a decoded JSON value to float64. Numeric strings are
// accepted, matching the lenient parsing of the original API.
func Number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// NumericField checks that the value is a number not below min.
func NumericField(v any, fieldName string, min float64) string {
	if v == nil {
		return fieldName + " is required"
	}
	f, ok := Number(v)
	if !ok {
		return fieldName + " must be a valid number"
	}
	if f < min {
		return fmt.Sprintf("%s must be %v or greater", fieldName, min)
	}
	return ""
}

// InvoiceItem validates a single line item. itemNumber > 0 prefixes messages
// with "Item N: " so multi-item errors stay attributable.
func InvoiceItem(item map[string]any, itemNumber int) string {
	prefix := ""
	if itemNumber > 0 {
		prefix = fmt.Sprintf("Item %d: ", itemNumber)
	}
	for _, f := range []string{"description", "quantity", "unit_price"} {
		if !present(item[f]) {
			return prefix + f + " is required"
		}
	}
	if desc, _ := item["description"].(string); utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return fmt.Sprintf("%sDescription must be %d characters or less", prefix, MaxDescriptionLength)
	}
	if msg := NumericField(item["quantity"], prefix+"Quantity", 0.01); msg != "" {
		return msg
	}
	if msg := NumericField(item["unit_price"], prefix+"Unit price", 0); msg != "" {
		return msg
	}
	return ""
}

// InvoiceData validates an invoice creation payload.
func InvoiceData(data map[string]any) string {
	if msg := Required(data, "customer_name", "due_date"); msg != "" {
		return msg
	}
	if name, _ := data["customer_name"].(string); utf8.RuneCountInString(name) > MaxCustomerNameLength {
		return fmt.Sprintf("Customer name must be %d characters or less", MaxCustomerNameLength)
	}
	if msg := DateString(data["due_date"], "Due date"); msg != "" {
		return msg
	}
	if v, ok := data["tax_rate"]; ok {
		if msg := NumericField(v, "Tax rate", 0); msg != "" {
			return msg
		}
		if f, _ := Number(v); f > 100 {
			return "Tax rate cannot exceed 100%"
		}
	}
	if v, ok := data["status"]; ok {
		if msg := statusValue(v); msg != "" {
			return msg
		}
	}
	return invoiceItems(data)
}

// InvoiceUpdateData validates the fields present in a partial update payload.
// Omitted fields are untouched by the update and are not checked.
func InvoiceUpdateData(data map[string]any) string {
	if v, ok := data["customer_name"]; ok {
		if name, _ := v.(string); utf8.RuneCountInString(name) > MaxCustomerNameLength {
			return fmt.Sprintf("Customer name must be %d characters or less", MaxCustomerNameLength)
		}
	}
	if v, ok := data["due_date"]; ok {
		if msg := DateString(v, "Due date"); msg != "" {
			return msg
		}
	}
	if v, ok := data["tax_rate"]; ok {
		if msg := NumericField(v, "Tax rate", 0); msg != "" {
			return msg
		}
		if f, _ := Number(v); f > 100 {
			return "Tax rate cannot exceed 100%"
		}
	}
	if v, ok := data["status"]; ok {
		if msg := statusValue(v); msg != "" {
			return msg
		}
	}
	if _, ok := data["items"]; ok {
		return invoiceItems(data)
	}
	return ""
}

// UserData validates a registration payload.
func UserData(data map[string]any) string {
	if msg := Required(data, "username", "email", "password"); msg != "" {
		return msg
	}
	username, _ := data["username"].(string)
	if msg := Username(username); msg != "" {
		return msg
	}
	email, _ := data["email"].(string)
	if msg := Email(email); msg != "" {
		return msg
	}
	password, _ := data["password"].(string)
	if msg := Password(password); msg != "" {
		return msg
	}
	if v, ok := data["company_name"]; ok && present(v) {
		if name, _ := v.(string); utf8.RuneCountInString(name) > MaxCompanyNameLength {
			return fmt.Sprintf("Company name must be %d characters or less", MaxCompanyNameLength)
		}
	}
	return ""
}

func statusValue(v any) string {
	s, _ := v.(string)
	switch s {
	case "draft", "sent", "paid", "overdue":
		return ""
	}
	return "Status must be one of: draft, sent, paid, overdue"
}

func invoiceItems(data map[string]any) string {
	raw, ok := data["items"]
	if !ok {
		return "items is required"
	}
	list, ok := raw.([]any)
	if !ok {
		return "items must be a list"
	}
	if len(list) == 0 {
		return "At least one item is required"
	}
	for i, el := range list {
		item, ok := el.(map[string]any)
		if !ok {
			return fmt.Sprintf("Item %d: must be an object", i+1)
		}
		if msg := InvoiceItem(item, i+1); msg != "" {
			return msg
		}
	}
	return ""
}
