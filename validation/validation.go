// Package validation runs ordered validator and sanitizer chains over
// submitted form fields and collects every failure, not just the first.
package validation

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// FieldError is one failed rule for one field.
type FieldError struct {
	Field   string
	Message string
}

// Errors keeps failures in the order the rules ran.
type Errors []FieldError

// Has reports whether field failed any rule.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For returns the messages recorded against field.
func (e Errors) For(field string) []string {
	var msgs []string
	for _, fe := range e {
		if fe.Field == field {
			msgs = append(msgs, fe.Message)
		}
	}
	return msgs
}

type step struct {
	check    func(string) bool
	message  string
	sanitize func(string) string
}

// Chain is the ordered rule list for one field. Checks see the value as left
// by the sanitizers before them; a failed check never stops later steps.
type Chain struct {
	field    string
	optional bool
	toDate   bool
	steps    []step
}

func Field(name string) *Chain {
	return &Chain{field: name}
}

// Optional skips the whole chain when the submitted value is empty.
func (c *Chain) Optional() *Chain {
	c.optional = true
	return c
}

func (c *Chain) Check(fn func(string) bool, message string) *Chain {
	c.steps = append(c.steps, step{check: fn, message: message})
	return c
}

func (c *Chain) Sanitize(fn func(string) string) *Chain {
	c.steps = append(c.steps, step{sanitize: fn})
	return c
}

func (c *Chain) Trim() *Chain {
	return c.Sanitize(strings.TrimSpace)
}

func (c *Chain) Escape() *Chain {
	return c.Sanitize(html.EscapeString)
}

func (c *Chain) NotEmpty(message string) *Chain {
	return c.Check(func(v string) bool { return v != "" }, message)
}

func (c *Chain) MaxLength(n int, message string) *Chain {
	return c.Check(func(v string) bool { return utf8.RuneCountInString(v) <= n }, message)
}

func (c *Chain) Matches(rx *regexp.Regexp, message string) *Chain {
	return c.Check(rx.MatchString, message)
}

// ISODate accepts calendar dates in YYYY-MM-DD form; impossible days such as
// 2020-02-30 fail.
func (c *Chain) ISODate(message string) *Chain {
	return c.Check(func(v string) bool {
		return validate.Var(v, "datetime=2006-01-02") == nil
	}, message)
}

// OneOf fails non-empty values outside allowed. Emptiness is left to NotEmpty.
func (c *Chain) OneOf(message string, allowed ...string) *Chain {
	tag := "oneof=" + strings.Join(allowed, " ")
	return c.Check(func(v string) bool {
		return v == "" || validate.Var(v, tag) == nil
	}, message)
}

// ObjectID fails non-empty values that are not record identifiers.
func (c *Chain) ObjectID(message string) *Chain {
	return c.Check(func(v string) bool {
		return v == "" || primitive.IsValidObjectID(v)
	}, message)
}

// ToDate converts the final month-day-year value into a date, available
// through Result.Date.
func (c *Chain) ToDate() *Chain {
	c.toDate = true
	return c
}

// MonthDayYear re-expresses an ISO YYYY-MM-DD value as MM-DD-YYYY.
func MonthDayYear(v string) string {
	if len(v) < 10 {
		return v
	}
	return v[5:7] + "-" + v[8:10] + "-" + v[0:4]
}

const monthDayYearLayout = "01-02-2006"

func (c *Chain) run(raw string) (string, Errors) {
	value := raw
	var errs Errors
	for _, s := range c.steps {
		if s.sanitize != nil {
			value = s.sanitize(value)
			continue
		}
		if !s.check(value) {
			errs = append(errs, FieldError{Field: c.field, Message: s.message})
		}
	}
	return value, errs
}

// Schema is the full rule set for one form.
type Schema struct {
	chains []*Chain
	lists  map[string]bool
}

func NewSchema(chains ...*Chain) *Schema {
	return &Schema{chains: chains, lists: map[string]bool{}}
}

// List marks fields that may arrive zero, one or many times. Their chains run
// once per submitted value.
func (s *Schema) List(fields ...string) *Schema {
	for _, f := range fields {
		s.lists[f] = true
	}
	return s
}

// Validate runs every chain against form. Fields no chain names are trimmed
// and escaped.
func (s *Schema) Validate(form url.Values) *Result {
	res := &Result{
		values: map[string]string{},
		lists:  map[string][]string{},
		dates:  map[string]time.Time{},
	}
	covered := map[string]bool{}

	for _, c := range s.chains {
		covered[c.field] = true
		if s.lists[c.field] {
			out := make([]string, 0, len(form[c.field]))
			for _, raw := range form[c.field] {
				v, errs := c.run(raw)
				out = append(out, v)
				res.Errors = append(res.Errors, errs...)
			}
			res.lists[c.field] = out
			continue
		}

		raw := form.Get(c.field)
		if c.optional && raw == "" {
			continue
		}
		v, errs := c.run(raw)
		res.values[c.field] = v
		res.Errors = append(res.Errors, errs...)
		if c.toDate && len(errs) == 0 {
			t, err := time.Parse(monthDayYearLayout, v)
			if err != nil {
				res.Errors = append(res.Errors, FieldError{Field: c.field, Message: "Invalid date"})
				continue
			}
			res.dates[c.field] = t
		}
	}

	for field, raws := range form {
		if covered[field] {
			continue
		}
		if s.lists[field] {
			out := make([]string, 0, len(raws))
			for _, raw := range raws {
				out = append(out, clean(raw))
			}
			res.lists[field] = out
			continue
		}
		if len(raws) > 0 {
			res.values[field] = clean(raws[0])
		}
	}
	for field := range s.lists {
		if _, ok := res.lists[field]; !ok {
			res.lists[field] = []string{}
		}
	}
	return res
}

func clean(v string) string {
	return html.EscapeString(strings.TrimSpace(v))
}

// Result holds the normalized values of one submission and its failures.
type Result struct {
	values map[string]string
	lists  map[string][]string
	dates  map[string]time.Time
	Errors Errors
}

func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Get returns the normalized value, or "" for skipped optional fields.
func (r *Result) Get(field string) string {
	return r.values[field]
}

// Provided reports whether an optional field was submitted at all.
func (r *Result) Provided(field string) bool {
	_, ok := r.values[field]
	return ok
}

// List returns a list field's values, never nil for declared list fields.
func (r *Result) List(field string) []string {
	return r.lists[field]
}

// Date returns the converted date, or nil when absent or invalid.
func (r *Result) Date(field string) *time.Time {
	t, ok := r.dates[field]
	if !ok {
		return nil
	}
	return &t
}

// AddError records a failure found outside the schema, e.g. by a lookup.
func (r *Result) AddError(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}
