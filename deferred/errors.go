package deferred

import "github.com/pkg/errors"

// ErrNilReason stands in for a nil error passed to Reject.
var ErrNilReason = errors.New("deferred: rejected without a reason")

// ErrAbandoned rejects a Go value whose function never returned.
var ErrAbandoned = errors.New("deferred: function exited without returning")
