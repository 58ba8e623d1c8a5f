package mvcc

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mukeshjc/mvcc-isolation/v2/utils"
)

// Connection is a thin stateful binding between at most one current
// transaction and the Database. It owns no core logic of its own: every
// command it accepts is forwarded to the Database's registry, version
// store, and conflict detector. id is a diagnostic session identifier
// only — it plays no role in isolation semantics.
//
// A Connection must never outlive the Database that created it; the
// Database does not take a reference back, and Go's garbage collector
// will not flag a dangling Connection at compile time.
type Connection struct {
	id uuid.UUID
	tx *Transaction
	db *Database
}

func newConnection(db *Database) *Connection {
	return &Connection{
		id: uuid.New(),
		db: db,
	}
}

func (c *Connection) ID() uuid.UUID {
	return c.id
}

// CurrentTransaction returns the transaction currently bound to this
// connection, or nil if none is bound.
func (c *Connection) CurrentTransaction() *Transaction {
	return c.tx
}

// Exec parses line and executes it; a convenience wrapper over
// ParseCommand + ExecCommand for REPL and test call sites.
func (c *Connection) Exec(line string) (string, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return "", err
	}
	return c.ExecCommand(cmd)
}

// MustExec panics if Exec fails; used by tests exercising only the
// happy path.
func (c *Connection) MustExec(line string) string {
	res, err := c.Exec(line)
	utils.AssertEq[error](err, nil, "unexpected error")
	return res
}

// ExecCommand dispatches cmd to the matching handler and returns its
// success message, or an error with the command's own failure message.
func (c *Connection) ExecCommand(cmd Command) (string, error) {
	c.db.logger.Debugw("exec", "conn", c.id, "kind", cmd.Kind, "key", cmd.Key)
	switch cmd.Kind {
	case BeginCommand:
		return c.execBegin()
	case AbortCommand:
		return c.execAbort()
	case CommitCommand:
		return c.execCommit()
	case GetCommand:
		return c.execGet(cmd.Key)
	case SetCommand:
		return c.execSet(cmd.Key, cmd.Value)
	case DeleteCommand:
		return c.execDelete(cmd.Key)
	default:
		return "", errors.Errorf("unknown command kind: %d", cmd.Kind)
	}
}

func (c *Connection) execBegin() (string, error) {
	c.tx = c.db.Begin(c.db.defaultIsolation)
	c.db.AssertActive(c.tx)
	c.db.logger.Debugw("[BEGIN]", "conn", c.id, "tx_id", c.tx.id)
	return "[BEGIN] finish", nil
}

func (c *Connection) execAbort() (string, error) {
	if c.tx == nil {
		return "", errors.New("[ABORT] no active transaction")
	}
	c.db.AssertActive(c.tx)
	if err := c.db.Complete(c.tx.id, AbortedTransaction); err != nil {
		return "", err
	}
	return "[ABORT] finish", nil
}

func (c *Connection) execCommit() (string, error) {
	if c.tx == nil {
		return "", errors.New("[COMMIT] no active transaction")
	}
	c.db.AssertActive(c.tx)
	if err := c.db.Complete(c.tx.id, CommittedTransaction); err != nil {
		return "", err
	}
	return "[COMMIT] finish", nil
}

func (c *Connection) execGet(key string) (string, error) {
	if c.tx == nil {
		return "", errors.New("[GET] no active transaction")
	}
	c.db.AssertActive(c.tx)

	// Attempted reads count for serializable conflict checking whether
	// or not the key is found.
	c.tx.readSet.Insert(key)

	val, ok := c.db.ReadLatestVisible(c.tx, key)
	if !ok {
		return "", errors.Errorf("[GET] key %s not found", key)
	}
	return fmt.Sprintf("[GET] key:%s, val:%s", key, val), nil
}

func (c *Connection) execSet(key, value string) (string, error) {
	if c.tx == nil {
		return "", errors.New("[SET] no active transaction")
	}
	c.db.AssertActive(c.tx)

	c.db.Write(c.tx, key, value)
	return fmt.Sprintf("[SET] key:%s, val:%s", key, value), nil
}

func (c *Connection) execDelete(key string) (string, error) {
	if c.tx == nil {
		return "", errors.New("[DELETE] no active transaction")
	}
	c.db.AssertActive(c.tx)

	if err := c.db.Delete(c.tx, key); err != nil {
		return "", errors.Errorf("[DELETE] key %s not found", key)
	}
	return fmt.Sprintf("[DELETE] key:%s", key), nil
}
