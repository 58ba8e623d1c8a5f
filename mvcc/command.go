package mvcc

import (
	"strings"

	"github.com/pkg/errors"
)

// CommandKind is the closed set of operations a Connection accepts.
type CommandKind uint8

const (
	BeginCommand CommandKind = iota
	AbortCommand
	CommitCommand
	GetCommand
	SetCommand
	DeleteCommand
)

// Command is one instruction submitted to a Connection. Key/Value are
// only meaningful for Get/Set/Delete.
type Command struct {
	Kind  CommandKind
	Key   string
	Value string
}

// ParseCommand tokenizes a REPL/test line ("set x hey") into a Command.
// Verb matching is case-insensitive; parsing lives outside the core on
// purpose — it is an external collaborator, not core isolation logic.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "begin":
		return Command{Kind: BeginCommand}, nil
	case "abort", "rollback":
		return Command{Kind: AbortCommand}, nil
	case "commit":
		return Command{Kind: CommitCommand}, nil
	case "get":
		if len(args) != 1 {
			return Command{}, errors.Errorf("get requires exactly one key, got %d args", len(args))
		}
		return Command{Kind: GetCommand, Key: args[0]}, nil
	case "set":
		if len(args) != 2 {
			return Command{}, errors.Errorf("set requires a key and a value, got %d args", len(args))
		}
		return Command{Kind: SetCommand, Key: args[0], Value: args[1]}, nil
	case "delete", "del":
		if len(args) != 1 {
			return Command{}, errors.Errorf("delete requires exactly one key, got %d args", len(args))
		}
		return Command{Kind: DeleteCommand, Key: args[0]}, nil
	default:
		return Command{}, errors.Errorf("unknown command: %s", verb)
	}
}
