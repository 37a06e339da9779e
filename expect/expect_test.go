package expect

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-catalog/deferred"
	"loan-catalog/domain"
	"loan-catalog/mockfn"
)

// recorder captures failures instead of failing the test.
type recorder struct {
	failed bool
	msgs   []string
}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.failed = true
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func TestCallAssertions(t *testing.T) {
	m := mockfn.Fn[func(args ...any) string]()
	m.ReturnValueOnce("Hello").ReturnValueOnce("there!")
	f := m.Func()

	assert.Equal(t, "Hello", f())
	assert.Equal(t, "there!", f())
	CalledTimes(t, m, 2)

	f("Hello", "there", "Steve")
	CalledWith(t, m, "Hello", "there", "Steve")

	f("Steve")
	LastCalledWith(t, m, "Steve")

	r := &recorder{}
	assert.False(t, LastCalledWith(r, m, "Hello", "there", "Steve"))
	assert.True(t, r.failed)

	r = &recorder{}
	assert.False(t, CalledTimes(r, m, 2))
	assert.True(t, r.failed)
}

func TestLastReturnedWith(t *testing.T) {
	loans := []domain.LoanRecord{
		{ID: 1, Name: "HVAC loan"},
		{ID: 2, Name: "Solar loan"},
		{ID: 3, Name: "Battery loan"},
	}
	loan := mockfn.New(func(l domain.LoanRecord) string { return l.Name })
	for _, l := range loans {
		loan.Func()(l)
	}

	LastReturnedWith(t, loan, "Battery loan")

	r := &recorder{}
	assert.False(t, LastReturnedWith(r, loan, "Solar loan"))
}

func TestResolvesAndRejects(t *testing.T) {
	getFullName := mockfn.New(func(string) *deferred.Value[string] {
		return deferred.Resolved("Joe Doe")
	})
	Resolves(t, getFullName.Func()("Joe Doe"), "Joe Doe")

	failing := mockfn.New(func(string) *deferred.Value[string] {
		return deferred.Rejected[string](errors.New("Something went wrong"))
	})
	Rejects(t, failing.Func()("Joe Doe"), "Something went wrong")

	r := &recorder{}
	assert.False(t, Rejects(r, deferred.Resolved("Joe Doe"), "Something went wrong"))
	assert.True(t, r.failed)

	r = &recorder{}
	assert.False(t, Resolves(r, deferred.Rejected[string](errors.New("x")), "Joe Doe"))
	assert.True(t, r.failed)
}

func TestRejects_Unsettled(t *testing.T) {
	prev := AwaitTimeout
	AwaitTimeout = 0
	t.Cleanup(func() { AwaitTimeout = prev })

	r := &recorder{}
	assert.False(t, Rejects(r, deferred.New[int](), "anything"))
	assert.True(t, r.failed)
}

func TestMatchesObject(t *testing.T) {
	got := domain.LoanRecord{ID: 4, Name: "Roofing loan", Amount: 20000}

	MatchesObject(t, got, map[string]any{"id": 4, "name": "Roofing loan", "amount": 20000})
	MatchesObject(t, &got, map[string]any{"name": "Roofing loan"})

	r := &recorder{}
	assert.False(t, MatchesObject(r, got, map[string]any{"amount": 1}))
	assert.True(t, r.failed)
}

func TestMatchesObject_ZeroValues(t *testing.T) {
	free := domain.LoanRecord{ID: 5, Name: "Free loan", Amount: 0}
	MatchesObject(t, free, map[string]any{"amount": 0})

	r := &recorder{}
	assert.False(t, MatchesObject(r, domain.LoanRecord{ID: 4, Amount: 20000}, map[string]any{"amount": 0}))
	assert.True(t, r.failed)

	r = &recorder{}
	assert.False(t, MatchesObject(r, domain.LoanRecord{ID: 4}, map[string]any{"id": 0}))
	assert.True(t, r.failed)
}

func TestMatchesObject_UnknownFieldOrNotStruct(t *testing.T) {
	r := &recorder{}
	assert.False(t, MatchesObject(r, domain.LoanRecord{}, map[string]any{"rate": 1}))
	assert.True(t, r.failed)

	r = &recorder{}
	assert.False(t, MatchesObject(r, 42, map[string]any{"id": 1}))
	assert.True(t, r.failed)

	r = &recorder{}
	assert.False(t, MatchesObject(r, (*domain.LoanRecord)(nil), map[string]any{"id": 1}))
	assert.True(t, r.failed)
}

func TestHasLength(t *testing.T) {
	HasLength(t, make([]domain.LoanRecord, 4), 4)

	r := &recorder{}
	assert.False(t, HasLength(r, nil, 4))
}
