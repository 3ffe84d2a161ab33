package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxNumberExponent bounds the decimal exponent of numeric fields, so later arithmetic
// and formatting stay proportional to the request size.
const maxNumberExponent = 64

// ErrOwnerFieldNotAllowed is returned when a mutation payload tries to set the record owner.
var ErrOwnerFieldNotAllowed = errors.New("user id cannot be provided in request body")

// ownerFieldNames holds normalized spellings of owner identifier keys.
var ownerFieldNames = map[string]struct{}{
	"userid":   {},
	"useruid":  {},
	"ownerid":  {},
	"owneruid": {},
}

// FieldError describes a single invalid field in a request payload.
type FieldError struct {
	Code    string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Payload is a decoded JSON object whose fields are inspected one by one, so that
// partial updates can tell an absent field from a zero value.
type Payload map[string]json.RawMessage

// DecodePayload reads a JSON object from r.
func DecodePayload(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if p == nil {
		return nil, errors.New("invalid request body: expected a JSON object")
	}
	return p, nil
}

// RejectOwnerFields fails when any key of p names the owner, whatever its casing or separators.
func RejectOwnerFields(p Payload) error {
	for key := range p {
		if _, ok := ownerFieldNames[normalizeKey(key)]; ok {
			return ErrOwnerFieldNotAllowed
		}
	}
	return nil
}

func normalizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.':
			return -1
		}
		return r
	}, strings.ToLower(key))
}

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the value of key when it is a JSON string.
func (p Payload) String(key string) (string, bool) {
	raw, ok := p[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Decimal returns the value of key when it is a JSON number, without going through float64.
// Numbers whose exponent lies outside ±maxNumberExponent are rejected.
func (p Payload) Decimal(key string) (decimal.Decimal, bool) {
	raw, ok := p[key]
	if !ok {
		return decimal.Zero, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !isNumberStart(raw[0]) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, false
	}
	if d.Exponent() > maxNumberExponent || d.Exponent() < -maxNumberExponent {
		return decimal.Zero, false
	}
	return d, true
}

// Int returns the value of key when it is a JSON number holding an integer.
func (p Payload) Int(key string) (int, bool) {
	d, ok := p.Decimal(key)
	if !ok || !d.IsInteger() {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

func isNumberStart(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9')
}
