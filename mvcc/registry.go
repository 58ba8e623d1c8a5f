package mvcc

import (
	"github.com/pkg/errors"
	"github.com/tidwall/btree"

	"github.com/mukeshjc/mvcc-isolation/v2/utils"
)

// Begin allocates the next transaction id, snapshots the set of
// currently-Active transaction ids as the new transaction's inprogress
// set, registers the transaction, and returns it. Snapshot capture and
// registration happen as one step (no other begin/commit can interleave
// in this single-threaded core), so the new id is never a member of its
// own inprogress set.
func (d *Database) Begin(isolation IsolationLevel) *Transaction {
	t := &Transaction{
		id:         d.nextTransactionId,
		isolation:  isolation,
		state:      ActiveTransaction,
		inprogress: d.activeTransactionIds(),
	}
	d.nextTransactionId++
	d.transactions.Set(t.id, t)

	d.logger.Debugw("begin", "tx_id", t.id, "isolation", t.isolation.String())
	return t
}

func (d *Database) activeTransactionIds() btree.Set[uint64] {
	var ids btree.Set[uint64]
	iter := d.transactions.Iter()
	for ok := iter.First(); ok; ok = iter.Next() {
		if iter.Value().state == ActiveTransaction {
			ids.Insert(iter.Key())
		}
	}
	return ids
}

// Complete transitions tx to Committed or Aborted. Committing first
// runs the Conflict Detector (conflict.go); on a conflict the
// transaction is forced to Aborted and the conflict error is returned.
func (d *Database) Complete(txId uint64, target TransactionState) error {
	t, ok := d.transactions.Get(txId)
	if !ok {
		return errors.New("Transaction not found")
	}

	switch target {
	case CommittedTransaction:
		if t.isolation == SnapshotIsolation {
			if d.hasConflict(t, func(t1, t2 *Transaction) bool {
				return setsShareKeys(t1.writeSet, t2.writeSet)
			}) {
				_ = d.Complete(txId, AbortedTransaction)
				return errors.New("Write-Write Conflict")
			}
		}

		if t.isolation == SerializableIsolation {
			if d.hasConflict(t, func(t1, t2 *Transaction) bool {
				return setsShareKeys(t1.readSet, t2.writeSet)
			}) {
				_ = d.Complete(txId, AbortedTransaction)
				return errors.New("Read-Write Conflict")
			}
		}
	case AbortedTransaction:
		// no conflict check on abort.
	default:
		return errors.New("Invalid transaction state")
	}

	t.state = target
	d.transactions.Set(t.id, t)
	d.logger.Debugw("complete", "tx_id", t.id, "state", t.state.String())
	return nil
}

// AssertActive is a contract check, not a recoverable error: callers
// (the Connection façade) must never invoke registry operations against
// a transaction that isn't Active.
func (d *Database) AssertActive(t *Transaction) {
	utils.Assert(t.id > 0, "valid transaction id")
	utils.Assert(d.StateOf(t.id) == ActiveTransaction, "transaction is not active")
}

// StateOf is a pure lookup; it panics if txId is unknown, matching the
// registry's contract that every id referenced by a Version or another
// transaction's inprogress set exists.
func (d *Database) StateOf(txId uint64) TransactionState {
	t, ok := d.transactions.Get(txId)
	utils.Assert(ok, "valid transaction")
	return t.state
}
