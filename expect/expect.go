// Package expect holds testify-style assertions for mockfn mocks, deferred
// values and loan records. Each function reports failure through t and
// returns whether the assertion held.
package expect

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/stretchr/testify/assert"

	"loan-catalog/deferred"
	"loan-catalog/domain"
)

// AwaitTimeout bounds how long Resolves and Rejects wait for settlement.
var AwaitTimeout = time.Second

// CallTracker is the read side of a mockfn.Mock.
type CallTracker interface {
	CallCount() int
	CalledWith(args ...any) bool
	LastCalledWith(args ...any) bool
	LastReturned(vals ...any) bool
}

func CalledTimes(t assert.TestingT, m CallTracker, n int, msgAndArgs ...interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.Equal(t, n, m.CallCount(), append([]interface{}{"call count"}, msgAndArgs...)...)
}

func CalledWith(t assert.TestingT, m CallTracker, args ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if m.CalledWith(args...) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("expected a call with %#v", args))
}

func LastCalledWith(t assert.TestingT, m CallTracker, args ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if m.LastCalledWith(args...) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("expected last call with %#v", args))
}

func LastReturnedWith(t assert.TestingT, m CallTracker, vals ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if m.LastReturned(vals...) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("expected last call to return %#v", vals))
}

// Resolves asserts that d settles to success with want.
func Resolves[T any](t assert.TestingT, d *deferred.Value[T], want T) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	ctx, cancel := context.WithTimeout(context.Background(), AwaitTimeout)
	defer cancel()

	got, err := d.Await(ctx)
	if !assert.NoError(t, err, "expected deferred value to resolve") {
		return false
	}
	return assert.Equal(t, want, got)
}

// Rejects asserts that d settles to failure whose message is msg.
func Rejects[T any](t assert.TestingT, d *deferred.Value[T], msg string) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	ctx, cancel := context.WithTimeout(context.Background(), AwaitTimeout)
	defer cancel()

	_, err := d.Await(ctx)
	if err == nil {
		return assert.Fail(t, "expected deferred value to reject")
	}
	if err == ctx.Err() {
		return assert.Fail(t, "deferred value did not settle", err.Error())
	}
	return assert.EqualError(t, err, msg)
}

// MatchesObject asserts that got, a struct or pointer to struct, has every
// field named in want with an equal value. Fields are named by their json tag,
// falling back to the Go field name. Fields left out of want are not checked,
// so zero values can be asserted explicitly:
//
//	expect.MatchesObject(t, loan, map[string]any{"id": 4, "amount": 20000})
func MatchesObject(t assert.TestingT, got any, want map[string]any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	fields, ok := structFields(got)
	if !ok {
		return assert.Fail(t, fmt.Sprintf("expected a struct, got %T", got))
	}

	keys := make([]string, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	matched := true
	for _, k := range keys {
		v, present := fields[k]
		if !present {
			matched = assert.Fail(t, fmt.Sprintf("%T has no field %q", got, k)) && matched
			continue
		}
		matched = assert.EqualValues(t, want[k], v, k) && matched
	}
	return matched
}

func structFields(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		out[name] = rv.Field(i).Interface()
	}
	return out, true
}

// HasLength asserts len(records) == n.
func HasLength(t assert.TestingT, records []domain.LoanRecord, n int) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.Len(t, records, n)
}
