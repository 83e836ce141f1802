package testerr

import "errors"

// Err is a sentinel error for tests that need a failing dependency.
var Err = errors.New("test error")

// FailingDep tracks calls to a dependency and fails them at
// configurable points in the call sequence.
// The zero value never fails.
type FailingDep struct {
	callIndex         int
	shouldFail        bool
	err               error
	failAllAfterIndex bool
	failAtIndex       int
}

// NewFailingDeps creates failure cases for a dependency that is
// expected to be called expectCalls times.
//
// Dependencies fail in two ways:
// - A single failure at index i, all other calls succeed.
// - All calls starting at index i fail.
func NewFailingDeps(err error, expectCalls int) []FailingDep {
	deps := make([]FailingDep, 0, expectCalls*2)
	for i := 0; i < expectCalls; i++ {
		deps = append(deps, FailingDep{
			callIndex:         -1,
			shouldFail:        true,
			err:               err,
			failAllAfterIndex: true,
			failAtIndex:       i,
		}, FailingDep{
			callIndex:         -1,
			shouldFail:        true,
			err:               err,
			failAllAfterIndex: false,
			failAtIndex:       i,
		})
	}

	return deps
}

// MaybeFailErrFunc runs f unless the dependency should fail this call.
func MaybeFailErrFunc(d *FailingDep, f func() error) error {
	if d.shouldFail {
		d.callIndex++

		if d.failAtIndex == d.callIndex {
			return d.err
		}

		if d.failAllAfterIndex && d.callIndex > d.failAtIndex {
			return d.err
		}
	}

	return f()
}

// MaybeFail runs f unless the dependency should fail this call.
func MaybeFail[T any](d *FailingDep, f func() (T, error)) (T, error) {
	if d.shouldFail {
		d.callIndex++

		var zero T

		if d.failAtIndex == d.callIndex {
			return zero, d.err
		}

		if d.failAllAfterIndex && d.callIndex > d.failAtIndex {
			return zero, d.err
		}
	}

	return f()
}
