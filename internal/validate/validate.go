// Package validate collects field-level payload errors without stopping at
// the first one, and coerces loosely typed JSON (numbers sent as text, empty
// strings for "no value") into typed values.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
	MsgNull     = "This field may not be null."
)

const DateLayout = "2006-01-02"

var rules = validator.New(validator.WithRequiredStructEnabled())

// Nullable is a parsed optional field. Set reports whether the payload
// mentioned the field; Val is nil when it was explicitly cleared.
type Nullable[T any] struct {
	Set bool
	Val *T
}

// Checker accumulates errors for one payload. In partial mode (PATCH) absent
// fields are never reported as missing.
type Checker struct {
	partial bool
	errs    apperr.FieldErrors
}

func New(partial bool) *Checker {
	return &Checker{partial: partial, errs: apperr.FieldErrors{}}
}

func (c *Checker) Partial() bool { return c.partial }

func (c *Checker) Add(field, msg string) {
	c.errs.Add(field, msg)
}

func (c *Checker) Has(field string) bool {
	return len(c.errs[field]) > 0
}

// Err returns a validation error carrying every collected message, or nil.
func (c *Checker) Err() error {
	return apperr.Validation(c.errs)
}

func (c *Checker) missing(field string) {
	if !c.partial {
		c.Add(field, MsgRequired)
	}
}

// String checks a text field. Required fields must be present (unless
// partial) and non-blank; maxLen <= 0 disables the length check.
func (c *Checker) String(field string, v *string, required bool, maxLen int) {
	if v == nil {
		if required {
			c.missing(field)
		}
		return
	}
	if required && !c.rule(field, strings.TrimSpace(*v), "required", "") {
		return
	}
	if maxLen > 0 {
		c.rule(field, *v, fmt.Sprintf("max=%d", maxLen), "")
	}
}

// Choice checks that a present value is one of choices. allowBlank admits
// the empty string (an unset enum).
func (c *Checker) Choice(field string, v *string, required, allowBlank bool, choices ...string) {
	if v == nil {
		if required {
			c.missing(field)
		}
		return
	}
	if *v == "" && allowBlank {
		return
	}
	c.rule(field, *v, "oneof="+strings.Join(choices, " "), "")
}

// Email checks a present, non-empty value is a bare address.
func (c *Checker) Email(field string, v *string) {
	if v == nil || *v == "" {
		return
	}
	c.rule(field, *v, "email", "")
}

// Decimal parses a number sent either as a JSON number or as text.
// Null or "" clears the value. Values outside (minExcl, maxIncl] get rangeMsg.
func (c *Checker) Decimal(field string, raw json.RawMessage, required bool, places int, minExcl, maxIncl float64, rangeMsg string) Nullable[float64] {
	return c.decimal(field, raw, required, places, "gt="+num(minExcl)+",lte="+num(maxIncl), rangeMsg)
}

// Coordinate is Decimal with the closed range [-limit, limit], for latitude
// (90) and longitude (180).
func (c *Checker) Coordinate(field string, raw json.RawMessage, limit float64) Nullable[float64] {
	return c.decimal(field, raw, false, 8, "gte="+num(-limit)+",lte="+num(limit),
		fmt.Sprintf("Ensure this value is between -%g and %g.", limit, limit))
}

func (c *Checker) decimal(field string, raw json.RawMessage, required bool, places int, bounds, rangeMsg string) Nullable[float64] {
	text, present, null := scalar(raw)
	if !present {
		if required {
			c.missing(field)
		}
		return Nullable[float64]{}
	}
	if null || text == "" {
		if required {
			c.Add(field, MsgNull)
		}
		return Nullable[float64]{Set: true}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.Add(field, "A valid number is required.")
		return Nullable[float64]{}
	}
	if places >= 0 {
		if dot := strings.IndexByte(text, '.'); dot >= 0 && len(strings.TrimRight(text[dot+1:], "0")) > places {
			c.Add(field, fmt.Sprintf("Ensure that there are no more than %d decimal places.", places))
			return Nullable[float64]{}
		}
	}
	if !c.rule(field, v, bounds, rangeMsg) {
		return Nullable[float64]{}
	}
	return Nullable[float64]{Set: true, Val: &v}
}

// Int parses an integer sent as a JSON number or text and checks v >= min.
func (c *Checker) Int(field string, raw json.RawMessage, required bool, min int) Nullable[int] {
	text, present, null := scalar(raw)
	if !present {
		if required {
			c.missing(field)
		}
		return Nullable[int]{}
	}
	if null || text == "" {
		if required {
			c.Add(field, MsgNull)
		}
		return Nullable[int]{Set: true}
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		// Accept integral floats such as 5.0.
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			c.Add(field, "A valid integer is required.")
			return Nullable[int]{}
		}
		v = int(f)
	}
	if !c.rule(field, v, fmt.Sprintf("gte=%d", min), "") {
		return Nullable[int]{}
	}
	return Nullable[int]{Set: true, Val: &v}
}

// Date parses YYYY-MM-DD. Empty string clears the value.
func (c *Checker) Date(field string, v *string, required bool) Nullable[time.Time] {
	return c.timeField(field, v, required, func(s string) (time.Time, error) {
		return time.Parse(DateLayout, s)
	}, "Date has wrong format. Use YYYY-MM-DD.")
}

// DateTime parses RFC 3339 timestamps.
func (c *Checker) DateTime(field string, v *string, required bool) Nullable[time.Time] {
	return c.timeField(field, v, required, func(s string) (time.Time, error) {
		return time.Parse(time.RFC3339, s)
	}, "Datetime has wrong format. Use RFC 3339, e.g. 2006-01-02T15:04:05Z.")
}

func (c *Checker) timeField(field string, v *string, required bool, parse func(string) (time.Time, error), msg string) Nullable[time.Time] {
	if v == nil {
		if required {
			c.missing(field)
		}
		return Nullable[time.Time]{}
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		if required {
			c.Add(field, MsgNull)
		}
		return Nullable[time.Time]{Set: true}
	}
	t, err := parse(s)
	if err != nil {
		c.Add(field, msg)
		return Nullable[time.Time]{}
	}
	return Nullable[time.Time]{Set: true, Val: &t}
}

// rule runs a validator tag against v and records the first failure. msg,
// when set, replaces the per-tag message.
func (c *Checker) rule(field string, v any, tag, msg string) bool {
	err := rules.Var(v, tag)
	if err == nil {
		return true
	}
	var failed validator.ValidationErrors
	if !errors.As(err, &failed) || len(failed) == 0 {
		c.Add(field, err.Error())
		return false
	}
	if msg == "" {
		msg = message(failed[0])
	}
	c.Add(field, msg)
	return false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgBlank
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "email":
		return "Enter a valid email address."
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	}
	return "Invalid value."
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// scalar reduces a raw JSON value to its text form.
func scalar(raw json.RawMessage) (text string, present, null bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false, false
	}
	if bytes.Equal(raw, []byte("null")) {
		return "", true, true
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw), true, false
		}
		return strings.TrimSpace(s), true, false
	}
	return string(raw), true, false
}
