package mockfn

// SpyOn replaces *target with a tracked function that calls the original
// *target until overridden. Restore puts the original back.
//
// SpyOn and Restore write *target without synchronisation; do not call them
// while other goroutines call through target.
func SpyOn[F any](target *F) *Mock[F] {
	if target == nil {
		panic("mockfn: SpyOn called with nil target")
	}
	orig := *target
	m := New(orig)
	*target = m.fn
	m.restore = func() { *target = orig }
	return m
}

// Restore resets the Mock and, for spies, re-installs the original function.
// Calling it more than once is harmless.
func (m *Mock[F]) Restore() {
	m.mu.Lock()
	restore := m.restore
	m.restore = nil
	m.mu.Unlock()

	m.Reset()
	if restore != nil {
		restore()
	}
}
