package mvcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandVerbs(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"begin", Command{Kind: BeginCommand}},
		{"BEGIN", Command{Kind: BeginCommand}},
		{"abort", Command{Kind: AbortCommand}},
		{"rollback", Command{Kind: AbortCommand}},
		{"commit", Command{Kind: CommitCommand}},
		{"get x", Command{Kind: GetCommand, Key: "x"}},
		{"GET x", Command{Kind: GetCommand, Key: "x"}},
		{"set x hey", Command{Kind: SetCommand, Key: "x", Value: "hey"}},
		{"delete x", Command{Kind: DeleteCommand, Key: "x"}},
		{"del x", Command{Kind: DeleteCommand, Key: "x"}},
	}

	for _, c := range cases {
		got, err := ParseCommand(c.line)
		require.NoError(t, err, c.line)
		assert.Equal(t, c.want, got, c.line)
	}
}

func TestParseCommandWhitespaceInsensitive(t *testing.T) {
	got, err := ParseCommand("  set   x    hey  ")
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: SetCommand, Key: "x", Value: "hey"}, got)
}

func TestParseCommandErrors(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"get",
		"get x y",
		"set x",
		"set x y z",
		"delete",
		"delete x y",
		"frobnicate x",
	}

	for _, line := range cases {
		_, err := ParseCommand(line)
		assert.Error(t, err, line)
	}
}
