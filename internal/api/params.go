// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/dinewise/internal/validation"
)

// queryParser collects typed query parameters and every parse failure so
// the client sees all bad fields at once.
type queryParser struct {
	values url.Values
	errs   []validation.FieldError
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values}
}

func (p *queryParser) str(key string) string {
	return strings.TrimSpace(p.values.Get(key))
}

func (p *queryParser) float(key string) *float64 {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, "number", "must be a number")
		return nil
	}
	return &v
}

func (p *queryParser) int(key string) *int {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, "integer", "must be an integer")
		return nil
	}
	return &v
}

// intOr returns the parameter or def when it is absent or malformed.
func (p *queryParser) intOr(key string, def int) int {
	if v := p.int(key); v != nil {
		return *v
	}
	return def
}

func (p *queryParser) floatOr(key string, def float64) float64 {
	if v := p.float(key); v != nil {
		return *v
	}
	return def
}

func (p *queryParser) fail(field, tag, message string) {
	p.errs = append(p.errs, validation.FieldError{
		Field:   field,
		Tag:     tag,
		Message: field + " " + message,
	})
}

// err returns nil or a *validation.RequestValidationError.
func (p *queryParser) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return &validation.RequestValidationError{Fields: p.errs}
}
