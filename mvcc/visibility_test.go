package mvcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func committedTx(db *Database, id uint64) {
	db.transactions.Set(id, &Transaction{id: id, state: CommittedTransaction})
}

func activeTx(db *Database, id uint64, isolation IsolationLevel, inprogress ...uint64) *Transaction {
	t := &Transaction{id: id, state: ActiveTransaction, isolation: isolation}
	for _, p := range inprogress {
		t.inprogress.Insert(p)
	}
	db.transactions.Set(id, t)
	return t
}

func TestIsVisibleReadUncommittedAlwaysTrue(t *testing.T) {
	db := NewDatabase(ReadUncommittedIsolation)
	reader := activeTx(db, 1, ReadUncommittedIsolation)

	assert.True(t, db.isVisible(reader, Version{txStartId: 99, txEndId: 0}))
	assert.True(t, db.isVisible(reader, Version{txStartId: 99, txEndId: 5}))
}

func TestIsVisibleReadCommitted(t *testing.T) {
	db := NewDatabase(ReadCommittedIsolation)

	writer := activeTx(db, 1, ReadCommittedIsolation)
	reader := activeTx(db, 2, ReadCommittedIsolation)

	v := Version{txStartId: writer.id, txEndId: 0}
	assert.False(t, db.isVisible(reader, v), "writer hasn't committed yet")

	committedTx(db, writer.id)
	assert.True(t, db.isVisible(reader, v), "writer has now committed")

	deleted := Version{txStartId: writer.id, txEndId: reader.id}
	assert.False(t, db.isVisible(reader, deleted), "reader's own delete retires it")

	deleter := activeTx(db, 3, ReadCommittedIsolation)
	deletedByActive := Version{txStartId: writer.id, txEndId: deleter.id}
	assert.True(t, db.isVisible(reader, deletedByActive), "deleter hasn't committed yet")

	committedTx(db, deleter.id)
	assert.False(t, db.isVisible(reader, deletedByActive), "deleter has now committed")
}

func TestIsVisibleSnapshotFamily(t *testing.T) {
	db := NewDatabase(SnapshotIsolation)

	// tx 1 committed before tx 3 began; tx 2 was concurrent with tx 3.
	committedTx(db, 1)
	activeTx(db, 2, SnapshotIsolation)
	reader := activeTx(db, 3, SnapshotIsolation, 2)

	assert.True(t, db.isVisible(reader, Version{txStartId: 1, txEndId: 0}), "created by a predecessor that committed before tx began")
	assert.False(t, db.isVisible(reader, Version{txStartId: 2, txEndId: 0}), "created by a transaction concurrent at begin")
	assert.False(t, db.isVisible(reader, Version{txStartId: 4, txEndId: 0}), "created by a transaction that began after tx")
	assert.False(t, db.isVisible(reader, Version{txStartId: 1, txEndId: 3}), "tx's own overwrite/delete")
}

func TestIsVisibleSnapshotSupersededByPredecessor(t *testing.T) {
	db := NewDatabase(SnapshotIsolation)
	committedTx(db, 1)
	committedTx(db, 2) // committed before tx 3's snapshot, not in its inprogress
	reader := activeTx(db, 3, SnapshotIsolation)

	assert.False(t, db.isVisible(reader, Version{txStartId: 1, txEndId: 2}), "superseded by a predecessor that committed before the snapshot")
}

func TestIsVisibleSnapshotNotSupersededWhenEnderWasConcurrent(t *testing.T) {
	db := NewDatabase(SnapshotIsolation)
	committedTx(db, 1)
	activeTx(db, 2, SnapshotIsolation)
	reader := activeTx(db, 3, SnapshotIsolation, 2)
	committedTx(db, 2)

	// tx 2 is in reader.inprogress, so even though it committed and its
	// id < reader.id, it must not retire the version from reader's view.
	assert.True(t, db.isVisible(reader, Version{txStartId: 1, txEndId: 2}))
}
