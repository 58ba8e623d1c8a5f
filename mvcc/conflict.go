package mvcc

import "github.com/tidwall/btree"

// hasConflict reports whether any "concurrent committed peer" of t1
// satisfies conflictFn. A peer is either a transaction that was Active
// when t1 began (t1.inprogress) or one that began after t1 and may have
// already committed ([t1.id, nextTransactionId)). Only peers that are
// currently Committed are considered.
func (d *Database) hasConflict(t1 *Transaction, conflictFn func(t1, t2 *Transaction) bool) bool {
	inprogressIter := t1.inprogress.Iter()
	for ok := inprogressIter.First(); ok; ok = inprogressIter.Next() {
		id := inprogressIter.Key()
		t2, ok := d.transactions.Get(id)
		if !ok {
			continue
		}
		if t2.state == CommittedTransaction && conflictFn(t1, t2) {
			return true
		}
	}

	for id := t1.id; id < d.nextTransactionId; id++ {
		t2, ok := d.transactions.Get(id)
		if !ok {
			continue
		}
		if t2.state == CommittedTransaction && conflictFn(t1, t2) {
			return true
		}
	}

	return false
}

func setsShareKeys(s1, s2 btree.Set[string]) bool {
	iter := s1.Iter()
	for ok := iter.First(); ok; ok = iter.Next() {
		if s2.Contains(iter.Key()) {
			return true
		}
	}
	return false
}
