package mvcc

import (
	"go.uber.org/zap"

	"github.com/pkg/errors"
	"github.com/tidwall/btree"
)

// errKeyNotFound is the version store's own "no visible version" error;
// the Connection façade returns its own "[DELETE] key {k} not found"
// message in its place rather than reusing this string.
func errKeyNotFound(key string) error {
	return errors.Errorf("key not found: %s", key)
}

// Database owns the Version Store (store) and the Transaction Registry
// (transactions/nextTransactionId). It carries a default isolation
// level each new connection's transactions inherit, and a logger every
// core operation reports through.
//
// Note: store, transactions, and nextTransactionId would need a mutex
// to be safe for concurrent goroutines. The core is deliberately
// single-threaded/cooperative, so none is used here.
type Database struct {
	defaultIsolation  IsolationLevel
	store             map[string][]Version
	transactions      btree.Map[uint64, *Transaction]
	nextTransactionId uint64
	logger            *zap.SugaredLogger
}

// Option configures a Database at construction time.
type Option func(*Database)

// WithLogger attaches a zap logger; core operations log at Debug level
// through it. Defaults to a no-op logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Database) { d.logger = l }
}

func NewDatabase(isolationLevel IsolationLevel, opts ...Option) *Database {
	d := &Database{
		defaultIsolation: isolationLevel,
		store:            map[string][]Version{},
		// transaction id 0 means "unset"; valid ids start at 1.
		nextTransactionId: 1,
		logger:            zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Database) NewConnection() *Connection {
	return newConnection(d)
}

// ReadLatestVisible scans key's history from newest to oldest and
// returns the data of the first version visible to tx, or ok=false if
// the key is unknown or no version is visible.
func (d *Database) ReadLatestVisible(t *Transaction, key string) (string, bool) {
	versions, ok := d.store[key]
	if !ok {
		return "", false
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if d.isVisible(t, versions[i]) {
			return versions[i].data, true
		}
	}
	return "", false
}

// Write end-stamps every version of key currently visible to t (so a
// later read by t itself sees only its own fresh version) and appends a
// new live version. Adds key to t's write set.
func (d *Database) Write(t *Transaction, key, value string) {
	versions, ok := d.store[key]
	if ok {
		for i := range versions {
			if d.isVisible(t, versions[i]) {
				versions[i].txEndId = t.id
			}
		}
		versions = append(versions, Version{txStartId: t.id, txEndId: 0, data: value})
		d.store[key] = versions
	} else {
		d.store[key] = []Version{{txStartId: t.id, txEndId: 0, data: value}}
	}
	t.writeSet.Insert(key)
}

// Delete end-stamps every version of key currently visible to t. Fails
// with "key not found" if no version was visible — in which case t's
// write set is deliberately left untouched.
func (d *Database) Delete(t *Transaction, key string) error {
	versions, ok := d.store[key]
	if !ok {
		return errKeyNotFound(key)
	}

	found := false
	for i := range versions {
		if d.isVisible(t, versions[i]) {
			versions[i].txEndId = t.id
			found = true
		}
	}
	if !found {
		return errKeyNotFound(key)
	}

	t.writeSet.Insert(key)
	return nil
}

// VersionSnapshot is a read-only diagnostic view of one entry in a
// key's history, used only by the REPL's ".history" meta-command — it
// has no bearing on visibility or conflict logic.
type VersionSnapshot struct {
	Data      string
	TxStartId uint64
	TxEndId   uint64
}

// DumpKey returns every version ever written for key, oldest first.
func (d *Database) DumpKey(key string) []VersionSnapshot {
	versions := d.store[key]
	out := make([]VersionSnapshot, len(versions))
	for i, v := range versions {
		out[i] = VersionSnapshot{Data: v.data, TxStartId: v.txStartId, TxEndId: v.txEndId}
	}
	return out
}
