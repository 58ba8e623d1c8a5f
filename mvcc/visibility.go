package mvcc

import "github.com/mukeshjc/mvcc-isolation/v2/utils"

// isVisible is the Visibility Oracle: a pure predicate over (tx,
// version) deciding whether version is visible to tx under tx's
// isolation level. This is the subtlest part of the core; every branch
// below is load-bearing and order-sensitive.
func (d *Database) isVisible(t *Transaction, v Version) bool {
	switch t.isolation {
	case ReadUncommittedIsolation:
		// Any write is visible to any reader immediately, committed or not.
		return true

	case ReadCommittedIsolation:
		// If the value wasn't created by tx and its creator hasn't
		// committed yet, it's no good.
		if v.txStartId != t.id && d.StateOf(v.txStartId) != CommittedTransaction {
			return false
		}
		if v.txEndId > 0 {
			// ... retired by tx itself.
			if v.txEndId == t.id {
				return false
			}
			// ... retired by some other transaction that has committed.
			if d.StateOf(v.txEndId) == CommittedTransaction {
				return false
			}
		}
		return true

	default:
		utils.Assert(t.isolation == RepeatableReadIsolation || t.isolation == SnapshotIsolation || t.isolation == SerializableIsolation, "unsupported isolation level")

		// RepeatableRead, Snapshot, Serializable share one snapshot-based
		// rule; the rest of what distinguishes Snapshot/Serializable
		// happens at commit time (conflict.go), not here.
		if v.txStartId > t.id {
			// created by a transaction that began after tx.
			return false
		}
		if t.inprogress.Contains(v.txStartId) {
			// creator was concurrent with tx at tx's begin.
			return false
		}
		if v.txStartId != t.id && d.StateOf(v.txStartId) != CommittedTransaction {
			// creator is neither tx itself nor committed.
			return false
		}
		if v.txEndId == t.id {
			// tx's own delete/overwrite.
			return false
		}
		if v.txEndId != 0 && v.txEndId < t.id &&
			d.StateOf(v.txEndId) == CommittedTransaction &&
			!t.inprogress.Contains(v.txEndId) {
			// superseded by a predecessor that committed before tx's snapshot.
			return false
		}
		return true
	}
}
