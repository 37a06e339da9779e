package mockfn

import (
	"fmt"
	"math"
	"reflect"
	"sync"
)

// Call holds the arguments of one invocation. Variadic arguments are
// flattened, so f("a", "b") on a func(...any) records Args ["a", "b"].
type Call struct {
	Args []any
}

// Result holds the outcome of one invocation.
type Result struct {
	Values     []any
	Panicked   bool
	Panic      any
	Exited     bool // the call ended in runtime.Goexit, e.g. t.FailNow
	Incomplete bool // call still running when inspected
}

type behavior func(in []reflect.Value) []reflect.Value

// Mock tracks calls made through Func. It is safe for concurrent use.
type Mock[F any] struct {
	typ reflect.Type
	fn  F

	mu      sync.Mutex
	base    behavior
	def     behavior
	once    []behavior
	calls   []Call
	results []Result
	gen     uint64 // bumped by Clear and Reset
	restore func()
}

// New returns a Mock whose default behaviour is impl. A nil impl returns
// zero values.
func New[F any](impl F) *Mock[F] {
	t := reflect.TypeOf((*F)(nil)).Elem()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("mockfn: %s is not a func type", t))
	}

	m := &Mock[F]{typ: t}
	m.base = m.implBehavior(impl)
	m.def = m.base
	m.fn = reflect.MakeFunc(t, m.invoke).Interface().(F)
	return m
}

// Fn returns a Mock with no implementation.
func Fn[F any]() *Mock[F] {
	var zero F
	return New(zero)
}

// Func returns the tracked function.
func (m *Mock[F]) Func() F {
	return m.fn
}

func (m *Mock[F]) invoke(in []reflect.Value) []reflect.Value {
	args := m.flatten(in)

	m.mu.Lock()
	gen := m.gen
	idx := len(m.calls)
	m.calls = append(m.calls, Call{Args: args})
	m.results = append(m.results, Result{Incomplete: true})
	b := m.def
	if len(m.once) > 0 {
		b = m.once[0]
		m.once = m.once[1:]
	}
	m.mu.Unlock()

	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		if r == nil {
			// runtime.Goexit: record it and let the goroutine keep unwinding.
			m.setResult(gen, idx, Result{Exited: true})
			return
		}
		m.setResult(gen, idx, Result{Panicked: true, Panic: r})
		panic(r)
	}()

	out := b(in)
	completed = true
	m.setResult(gen, idx, Result{Values: interfaces(out)})
	return out
}

func (m *Mock[F]) setResult(gen uint64, idx int, r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Clear or Reset dropped the history while the call was running.
	if gen != m.gen {
		return
	}
	m.results[idx] = r
}

func (m *Mock[F]) flatten(in []reflect.Value) []any {
	args := make([]any, 0, len(in))
	if m.typ.IsVariadic() && len(in) > 0 {
		last := in[len(in)-1]
		for _, v := range in[:len(in)-1] {
			args = append(args, v.Interface())
		}
		for i := 0; i < last.Len(); i++ {
			args = append(args, last.Index(i).Interface())
		}
		return args
	}
	for _, v := range in {
		args = append(args, v.Interface())
	}
	return args
}

func (m *Mock[F]) implBehavior(impl F) behavior {
	v := reflect.ValueOf(impl)
	if !v.IsValid() || v.IsNil() {
		return m.zeroBehavior()
	}
	if m.typ.IsVariadic() {
		return func(in []reflect.Value) []reflect.Value { return v.CallSlice(in) }
	}
	return func(in []reflect.Value) []reflect.Value { return v.Call(in) }
}

func (m *Mock[F]) zeroBehavior() behavior {
	return func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, m.typ.NumOut())
		for i := range out {
			out[i] = reflect.Zero(m.typ.Out(i))
		}
		return out
	}
}

func (m *Mock[F]) valuesBehavior(vals []any) behavior {
	out := m.toValues(vals)
	return func([]reflect.Value) []reflect.Value {
		return out
	}
}

func (m *Mock[F]) toValues(vals []any) []reflect.Value {
	if len(vals) != m.typ.NumOut() {
		panic(fmt.Sprintf("mockfn: %s returns %d values, got %d", m.typ, m.typ.NumOut(), len(vals)))
	}
	out := make([]reflect.Value, len(vals))
	for i, v := range vals {
		ot := m.typ.Out(i)
		if v == nil {
			out[i] = reflect.Zero(ot)
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Type().AssignableTo(ot) {
			dst := reflect.New(ot).Elem()
			dst.Set(rv)
			out[i] = dst
			continue
		}
		cv, ok := convertExact(rv, ot)
		if !ok {
			panic(fmt.Sprintf("mockfn: return value %d: %s %v is not assignable to %s", i, rv.Type(), v, ot))
		}
		out[i] = cv
	}
	return out
}

// convertExact converts between numeric kinds only when the value survives
// unchanged, so ReturnValue(20000) works for an int64 result but 3.7 for an
// int or 300 for an int8 is rejected.
func convertExact(rv reflect.Value, ot reflect.Type) (reflect.Value, bool) {
	if !isNumeric(rv.Kind()) || !isNumeric(ot.Kind()) {
		return reflect.Value{}, false
	}
	zero := reflect.Zero(ot)

	switch {
	case isInt(rv.Kind()):
		n := rv.Int()
		switch {
		case isInt(ot.Kind()):
			if zero.OverflowInt(n) {
				return reflect.Value{}, false
			}
		case isUint(ot.Kind()):
			if n < 0 || zero.OverflowUint(uint64(n)) {
				return reflect.Value{}, false
			}
		default:
			f := float64(n)
			if f >= maxInt64Float || int64(f) != n || zero.OverflowFloat(f) || rv.Convert(ot).Float() != f {
				return reflect.Value{}, false
			}
		}
	case isUint(rv.Kind()):
		u := rv.Uint()
		switch {
		case isInt(ot.Kind()):
			if u > math.MaxInt64 || zero.OverflowInt(int64(u)) {
				return reflect.Value{}, false
			}
		case isUint(ot.Kind()):
			if zero.OverflowUint(u) {
				return reflect.Value{}, false
			}
		default:
			f := float64(u)
			if f >= maxUint64Float || uint64(f) != u || zero.OverflowFloat(f) || rv.Convert(ot).Float() != f {
				return reflect.Value{}, false
			}
		}
	default:
		f := rv.Float()
		switch {
		case isInt(ot.Kind()):
			if f != math.Trunc(f) || f < -maxInt64Float || f >= maxInt64Float || zero.OverflowInt(int64(f)) {
				return reflect.Value{}, false
			}
		case isUint(ot.Kind()):
			if f != math.Trunc(f) || f < 0 || f >= maxUint64Float || zero.OverflowUint(uint64(f)) {
				return reflect.Value{}, false
			}
		default:
			if math.IsNaN(f) {
				break
			}
			if zero.OverflowFloat(f) || rv.Convert(ot).Float() != f {
				return reflect.Value{}, false
			}
		}
	}
	return rv.Convert(ot), true
}

const (
	maxInt64Float  = 1 << 63
	maxUint64Float = 1 << 64
)

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || k == reflect.Float32 || k == reflect.Float64
}

func interfaces(vals []reflect.Value) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v.Interface()
	}
	return out
}

// ReturnValue makes every call return vals, after any queued one-shot values.
func (m *Mock[F]) ReturnValue(vals ...any) *Mock[F] {
	b := m.valuesBehavior(vals)
	m.mu.Lock()
	m.def = b
	m.mu.Unlock()
	return m
}

// ReturnValueOnce queues vals for the next call that has no earlier queued
// behaviour. Calls chain: the first queued value is returned first.
func (m *Mock[F]) ReturnValueOnce(vals ...any) *Mock[F] {
	b := m.valuesBehavior(vals)
	m.mu.Lock()
	m.once = append(m.once, b)
	m.mu.Unlock()
	return m
}

// Implementation replaces the default behaviour with impl.
func (m *Mock[F]) Implementation(impl F) *Mock[F] {
	b := m.implBehavior(impl)
	m.mu.Lock()
	m.def = b
	m.mu.Unlock()
	return m
}

// ImplementationOnce queues impl for a single call.
func (m *Mock[F]) ImplementationOnce(impl F) *Mock[F] {
	b := m.implBehavior(impl)
	m.mu.Lock()
	m.once = append(m.once, b)
	m.mu.Unlock()
	return m
}

// Calls returns a copy of the call history, oldest first.
func (m *Mock[F]) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Mock[F]) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent call. ok is false before the first call.
func (m *Mock[F]) LastCall() (c Call, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// Results returns a copy of the per-call outcomes, aligned with Calls.
func (m *Mock[F]) Results() []Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Result, len(m.results))
	copy(out, m.results)
	return out
}

func (m *Mock[F]) LastResult() (r Result, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.results) == 0 {
		return Result{}, false
	}
	return m.results[len(m.results)-1], true
}

// CalledWith reports whether any call received exactly args.
func (m *Mock[F]) CalledWith(args ...any) bool {
	for _, c := range m.Calls() {
		if equalArgs(c.Args, args) {
			return true
		}
	}
	return false
}

// LastCalledWith reports whether the most recent call received exactly args.
func (m *Mock[F]) LastCalledWith(args ...any) bool {
	c, ok := m.LastCall()
	return ok && equalArgs(c.Args, args)
}

// LastReturned reports whether the most recent call completed and returned
// exactly vals.
func (m *Mock[F]) LastReturned(vals ...any) bool {
	r, ok := m.LastResult()
	if !ok || r.Panicked || r.Exited || r.Incomplete {
		return false
	}
	return equalArgs(r.Values, vals)
}

func equalArgs(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Clear drops the call history and keeps any overrides.
func (m *Mock[F]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.results = nil
	m.gen++
}

// Reset drops the call history and every override, going back to the
// implementation the Mock was created with.
func (m *Mock[F]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.results = nil
	m.gen++
	m.once = nil
	m.def = m.base
}
