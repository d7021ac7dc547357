package mockcalls

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alevsk/resultset/internal/value"
)

type notifier struct {
	mock.Mock
}

func (n *notifier) Send(to string, amount int) error {
	args := n.Called(to, amount)
	return args.Error(0)
}

func TestFromMock(t *testing.T) {
	n := &notifier{}
	n.On("Send", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, n.Send("ada", 3))
	require.NoError(t, n.Send("grace", 5))

	calls := FromMock(&n.Mock)
	require.Len(t, calls, 2)
	require.Equal(t, "Send", calls[0].Method)
	require.Equal(t, []any{"ada", 3}, calls[0].Args)
	require.Equal(t, []any{"grace", 5}, calls[1].Args)
}

func TestFromMockNoCalls(t *testing.T) {
	n := &notifier{}
	require.Empty(t, FromMock(&n.Mock))
}

func TestSnapshotSerializes(t *testing.T) {
	n := &notifier{}
	n.On("Send", mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, n.Send("ada", 3))

	got, err := value.Encode(Snapshot(&n.Mock))
	require.NoError(t, err)
	require.Equal(t,
		"[\n    {\n        \"method\": \"Send\",\n        \"args\": [\n            \"ada\",\n            3\n        ]\n    }\n]\n",
		string(got))
}

func TestSnapshotAllSortsNames(t *testing.T) {
	a := &notifier{}
	b := &notifier{}
	a.On("Send", mock.Anything, mock.Anything).Return(nil)
	b.On("Send", mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, a.Send("x", 1))
	require.NoError(t, b.Send("y", 2))

	snap := SnapshotAll(map[string]*mock.Mock{
		"mailer": &a.Mock,
		"biller": &b.Mock,
	})
	require.Equal(t, []string{"biller", "mailer"}, snap.Keys())
}
