// Package schema contains the records the API accepts and returns,
// together with the rules that validate them.
//
// Every entity comes in up to four shapes:
//   - Base: the editable fields shared by the other shapes.
//   - Create: what a client sends to create the entity (may add a password).
//   - public (Score, SocialNetwork, User, Supervisor): what a client receives.
//     It adds identity and nested children and never carries a secret.
//   - DB (SocialNetworkDB, SupervisorDB): the public fields plus the stored
//     secret. Only the repository and service layers exchange it.
//
// Records are built from a raw mapping (a decoded JSON object) with the
// ParseXxx functions, or from persistence records with the XxxFromModel
// functions. Both run the same field rules and report every violation at
// once through *ValidationError.
//
// Nothing here keeps state between calls: defaults such as empty child lists
// and today's date are computed on every call, so all functions are safe for
// concurrent use.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Field rules, expressed as go-playground/validator tags.
const (
	ruleEmail       = "required,email,email_domain"
	rulePositive    = "gt=0"
	ruleNonNegative = "gte=0"
	ruleNetworkName = "oneof=twitter instagram"
)

// Type constraints reported when a raw value has the wrong shape.
const (
	constraintRequired = "required"
	constraintString   = "string"
	constraintInt      = "int"
	constraintFloat    = "float"
	constraintBool     = "bool"
	constraintDate     = "date"
	constraintList     = "list"
	constraintObject   = "object"
)

// validate is safe for concurrent use; it only caches parsed tags.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("email_domain", validateEmailDomain); err != nil {
		panic(err)
	}
	return v
}

// validateEmailDomain rejects addresses whose domain has no dot, which the
// plain "email" tag lets through (e.g. "a@localhost").
func validateEmailDomain(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return false
	}
	domain := addr[at+1:]
	return strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".") &&
		!strings.Contains(domain, "..")
}

// decoder reads typed fields out of a raw mapping and checks field rules.
//
// A decoder with a nil mapping is used to check records built from
// persistence models: every lookup misses and only the rules run.
// Child decoders share the parent's error and failure set so that nested
// records report paths like "users[0].social_networks[1].email".
type decoder struct {
	raw    map[string]any
	prefix string
	verr   *ValidationError
	failed map[string]struct{}
}

func newDecoder(schemaName string, raw map[string]any) *decoder {
	return &decoder{
		raw:    raw,
		verr:   &ValidationError{Schema: schemaName},
		failed: make(map[string]struct{}),
	}
}

func (d *decoder) child(prefix string, raw map[string]any) *decoder {
	return &decoder{
		raw:    raw,
		prefix: d.path(prefix),
		verr:   d.verr,
		failed: d.failed,
	}
}

func (d *decoder) path(field string) string {
	if d.prefix == "" {
		return field
	}
	return d.prefix + "." + field
}

// err returns the collected failure, or nil.
func (d *decoder) err() error {
	if len(d.verr.Violations) == 0 {
		return nil
	}
	return d.verr
}

func (d *decoder) fail(field, constraint, param string, value any) {
	p := d.path(field)
	d.failed[p] = struct{}{}
	d.verr.add(p, constraint, param, value)
}

// check applies a validator rule to an already-typed value. Fields that
// failed type decoding are skipped so each field is reported once.
func (d *decoder) check(field string, value any, rule string) {
	p := d.path(field)
	if _, ok := d.failed[p]; ok {
		return
	}
	err := validate.Var(value, rule)
	if err == nil {
		return
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		d.fail(field, "invalid", "", value)
		return
	}
	for _, fe := range fieldErrors {
		d.fail(field, fe.Tag(), fe.Param(), value)
	}
}

func (d *decoder) lookup(field string) (any, bool) {
	v, ok := d.raw[field]
	return v, ok
}

func (d *decoder) str(field string) string {
	v, ok := d.lookup(field)
	if !ok {
		d.fail(field, constraintRequired, "", nil)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(field, constraintString, "", v)
		return ""
	}
	return s
}

func (d *decoder) strOr(field, def string) string {
	if _, ok := d.lookup(field); !ok {
		return def
	}
	return d.str(field)
}

func (d *decoder) int(field string) int64 {
	v, ok := d.lookup(field)
	if !ok {
		d.fail(field, constraintRequired, "", nil)
		return 0
	}
	n, ok := toInt(v)
	if !ok {
		d.fail(field, constraintInt, "", v)
		return 0
	}
	return n
}

func (d *decoder) intOr(field string, def int64) int64 {
	if _, ok := d.lookup(field); !ok {
		return def
	}
	return d.int(field)
}

// optionalInt treats both an absent key and null as "no value".
func (d *decoder) optionalInt(field string) *int64 {
	v, ok := d.lookup(field)
	if !ok || v == nil {
		return nil
	}
	n, ok := toInt(v)
	if !ok {
		d.fail(field, constraintInt, "", v)
		return nil
	}
	return &n
}

func (d *decoder) floatOr(field string, def float64) float64 {
	v, ok := d.lookup(field)
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		d.fail(field, constraintFloat, "", v)
		return def
	}
	return f
}

func (d *decoder) boolOr(field string, def bool) bool {
	v, ok := d.lookup(field)
	if !ok {
		return def
	}
	b, ok := toBool(v)
	if !ok {
		d.fail(field, constraintBool, "", v)
		return def
	}
	return b
}

func (d *decoder) dateOr(field string, def func() Date) Date {
	v, ok := d.lookup(field)
	if !ok {
		return def()
	}
	date, ok := toDate(v)
	if !ok {
		d.fail(field, constraintDate, "", v)
		return def()
	}
	return date
}

// list decodes a list of objects, calling each with a decoder scoped to the
// element. An absent key leaves the caller's default in place.
func (d *decoder) list(field string, each func(d *decoder)) {
	v, ok := d.lookup(field)
	if !ok {
		return
	}
	items, ok := v.([]any)
	if !ok {
		d.fail(field, constraintList, "", v)
		return
	}
	for i, item := range items {
		elem := fmt.Sprintf("%s[%d]", field, i)
		obj, ok := item.(map[string]any)
		if !ok {
			d.fail(elem, constraintObject, "", item)
			continue
		}
		each(d.child(elem, obj))
	}
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
	case float64:
		if b == 0 || b == 1 {
			return b == 1, true
		}
	case int:
		if b == 0 || b == 1 {
			return b == 1, true
		}
	case json.Number:
		switch b.String() {
		case "0", "1":
			return b.String() == "1", true
		}
	}
	return false, false
}

func toDate(v any) (Date, bool) {
	switch t := v.(type) {
	case Date:
		return t, true
	case time.Time:
		return DateOf(t), true
	case string:
		d, err := ParseDate(t)
		return d, err == nil
	}
	return Date{}, false
}
