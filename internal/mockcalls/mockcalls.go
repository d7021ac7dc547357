// Package mockcalls flattens recorded testify mock invocations into a
// snapshot-ready form.
package mockcalls

import (
	"sort"

	"github.com/stretchr/testify/mock"

	"github.com/alevsk/resultset/internal/value"
)

// Call is one recorded invocation
type Call struct {
	Method string
	Args   []any
}

// FromMock returns the calls recorded on m in invocation order
func FromMock(m *mock.Mock) []Call {
	calls := make([]Call, 0, len(m.Calls))
	for _, c := range m.Calls {
		args := make([]any, len(c.Arguments))
		copy(args, c.Arguments)
		calls = append(calls, Call{Method: c.Method, Args: args})
	}
	return calls
}

// Snapshot converts recorded calls into the value form accepted by the
// snapshot asserter: one ordered map per call with "method" and "args".
func Snapshot(m *mock.Mock) []any {
	calls := FromMock(m)
	out := make([]any, len(calls))
	for i, c := range calls {
		out[i] = value.NewMap().
			Set("method", c.Method).
			Set("args", append([]any{}, c.Args...))
	}
	return out
}

// SnapshotAll converts a named set of mocks. Keys are sorted so the
// resulting snapshot is stable.
func SnapshotAll(mocks map[string]*mock.Mock) *value.Map {
	names := make([]string, 0, len(mocks))
	for name := range mocks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := value.NewMap()
	for _, name := range names {
		out.Set(name, Snapshot(mocks[name]))
	}
	return out
}
