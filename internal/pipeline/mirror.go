// Package pipeline keeps a client-side copy of the transaction list in sync
// with the remote store while the user moves deals between board columns.
//
// Moves are applied to the Mirror immediately and confirmed in the
// background. A failed confirmation restores the previous status unless a
// newer write to the same transaction has superseded it.
package pipeline

import (
	"sync"

	"github.com/hance08/dealflow/internal/model"
)

type record struct {
	tx      model.Transaction
	version uint64
}

// Mirror is the local, ordered copy of the transaction list.
type Mirror struct {
	mu      sync.Mutex
	records []record
	index   map[int64]int
	clock   uint64
}

// Column is one board column: every mirrored transaction in a status.
type Column struct {
	Status model.Status
	Items  []model.Transaction
}

func NewMirror() *Mirror {
	return &Mirror{index: make(map[int64]int)}
}

// Load replaces the mirror with copies of txs, keeping their order.
// Every record gets a fresh version, so confirmations started before the
// reload can no longer roll it back.
func (m *Mirror) Load(txs []model.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make([]record, 0, len(txs))
	m.index = make(map[int64]int, len(txs))
	for _, tx := range txs {
		m.clock++
		m.index[tx.ID] = len(m.records)
		m.records = append(m.records, record{tx: tx.Clone(), version: m.clock})
	}
}

// ApplyStatus sets the status of transaction id and returns the status it
// replaced together with the version of the new write. ok is false, and the
// mirror untouched, when id is not mirrored.
func (m *Mirror) ApplyStatus(id int64, status model.Status) (prev model.Status, version uint64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, found := m.index[id]
	if !found {
		return "", 0, false
	}

	rec := &m.records[i]
	prev = rec.tx.Status
	m.clock++
	rec.tx.Status = status
	rec.version = m.clock
	return prev, rec.version, true
}

// Revert restores status on transaction id only if version is still the
// record's current version. It reports whether the record was changed.
func (m *Mirror) Revert(id int64, status model.Status, version uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, found := m.index[id]
	if !found {
		return false
	}

	rec := &m.records[i]
	if rec.version != version {
		return false
	}
	m.clock++
	rec.tx.Status = status
	rec.version = m.clock
	return true
}

func (m *Mirror) Get(id int64) (model.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, found := m.index[id]
	if !found {
		return model.Transaction{}, false
	}
	return m.records[i].tx.Clone(), true
}

// Version returns the current write version of id, 0 if absent.
func (m *Mirror) Version(id int64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i, found := m.index[id]; found {
		return m.records[i].version
	}
	return 0
}

func (m *Mirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Snapshot returns copies of all records in mirror order.
func (m *Mirror) Snapshot() []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Transaction, len(m.records))
	for i, rec := range m.records {
		out[i] = rec.tx.Clone()
	}
	return out
}

// Columns groups the mirror by status in board order. Records whose status
// is not a known pipeline stage are left out.
func (m *Mirror) Columns() []Column {
	statuses := model.Statuses()
	cols := make([]Column, len(statuses))
	pos := make(map[model.Status]int, len(statuses))
	for i, s := range statuses {
		cols[i].Status = s
		pos[s] = i
	}

	for _, tx := range m.Snapshot() {
		if i, ok := pos[tx.Status]; ok {
			cols[i].Items = append(cols[i].Items, tx)
		}
	}
	return cols
}
