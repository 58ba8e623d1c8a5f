package mvcc

import (
	"github.com/tidwall/btree"
)

// The three states a transaction moves through: Active until it
// commits or aborts, then permanently Committed or Aborted.
type TransactionState uint8

const (
	ActiveTransaction TransactionState = iota
	CommittedTransaction
	AbortedTransaction
)

func (s TransactionState) String() string {
	switch s {
	case ActiveTransaction:
		return "active"
	case CommittedTransaction:
		return "committed"
	case AbortedTransaction:
		return "aborted"
	default:
		return "unknown"
	}
}

// transaction has an isolation level, an id (monotonic increasing integer), and a current state.
// Stricter isolation levels need extra info: the set of transactions that
// were in-progress when this one started (inprogress), and all keys read
// and written by this transaction (readSet/writeSet).
type Transaction struct {
	isolation IsolationLevel
	id        uint64
	state     TransactionState

	// Used only by Repeatable Read and stricter.
	inprogress btree.Set[uint64]

	// Used only by Snapshot Isolation and stricter.
	writeSet btree.Set[string]
	readSet  btree.Set[string]
}

func (t *Transaction) ID() uint64 {
	return t.id
}

func (t *Transaction) State() TransactionState {
	return t.state
}

func (t *Transaction) Isolation() IsolationLevel {
	return t.isolation
}
