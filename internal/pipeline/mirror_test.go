package pipeline

import (
	"testing"

	"github.com/hance08/dealflow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDeals() []model.Transaction {
	return []model.Transaction{
		{ID: 1, Name: "12 Elm St", Status: model.StatusInProgress, Price: decimal.NewFromInt(450000), Parties: []string{"Roy", "Chen"}},
		{ID: 2, Name: "4 Oak Ave", Status: model.StatusConditional, Price: decimal.NewFromInt(720000)},
		{ID: 3, Name: "9 Pine Rd", Status: model.StatusFirm, Price: decimal.NewFromInt(315500)},
		{ID: 4, Name: "77 Birch Ln", Status: model.StatusInProgress, Price: decimal.NewFromInt(510000)},
	}
}

func TestMirrorLoad_CopiesInput(t *testing.T) {
	in := sampleDeals()
	m := NewMirror()
	m.Load(in)

	require.Equal(t, len(in), m.Len())
	for _, tx := range in {
		got, ok := m.Get(tx.ID)
		require.True(t, ok)
		assert.Equal(t, tx.Status, got.Status)
		assert.Equal(t, tx.Name, got.Name)
	}

	// mutating the caller's slice must not leak into the mirror
	in[0].Status = model.StatusClosed
	in[0].Parties[0] = "someone else"

	got, _ := m.Get(1)
	assert.Equal(t, model.StatusInProgress, got.Status)
	assert.Equal(t, "Roy", got.Parties[0])
}

func TestMirrorLoad_ReplacesEverything(t *testing.T) {
	m := NewMirror()
	m.Load(sampleDeals())
	m.Load([]model.Transaction{{ID: 9, Status: model.StatusClosed}})

	assert.Equal(t, 1, m.Len())
	_, ok := m.Get(1)
	assert.False(t, ok)
}

func TestMirrorApplyStatus_Isolated(t *testing.T) {
	m := NewMirror()
	m.Load(sampleDeals())
	before := m.Snapshot()

	prev, version, ok := m.ApplyStatus(3, model.StatusClosed)
	require.True(t, ok)
	assert.Equal(t, model.StatusFirm, prev)
	assert.Equal(t, version, m.Version(3))

	after := m.Snapshot()
	for i := range before {
		if before[i].ID == 3 {
			assert.Equal(t, model.StatusClosed, after[i].Status)
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
}

func TestMirrorApplyStatus_MissingIDIsNoop(t *testing.T) {
	m := NewMirror()
	m.Load(sampleDeals())
	before := m.Snapshot()
	versions := map[int64]uint64{}
	for _, tx := range before {
		versions[tx.ID] = m.Version(tx.ID)
	}

	_, _, ok := m.ApplyStatus(999, model.StatusFirm)
	assert.False(t, ok)
	assert.Equal(t, before, m.Snapshot())
	for id, v := range versions {
		assert.Equal(t, v, m.Version(id))
	}
}

func TestMirrorRevert_OnlyMatchingVersion(t *testing.T) {
	m := NewMirror()
	m.Load(sampleDeals())

	_, v1, _ := m.ApplyStatus(1, model.StatusConditional)
	_, v2, _ := m.ApplyStatus(1, model.StatusFirm)
	require.Greater(t, v2, v1)

	assert.False(t, m.Revert(1, model.StatusInProgress, v1))
	got, _ := m.Get(1)
	assert.Equal(t, model.StatusFirm, got.Status)

	assert.True(t, m.Revert(1, model.StatusConditional, v2))
	got, _ = m.Get(1)
	assert.Equal(t, model.StatusConditional, got.Status)

	assert.False(t, m.Revert(999, model.StatusFirm, v2))
}

func TestMirrorRevert_SkippedAfterReload(t *testing.T) {
	m := NewMirror()
	m.Load(sampleDeals())

	_, v, _ := m.ApplyStatus(1, model.StatusFirm)
	m.Load(sampleDeals())

	assert.False(t, m.Revert(1, model.StatusInProgress, v))
}

func TestMirrorColumns(t *testing.T) {
	deals := append(sampleDeals(), model.Transaction{ID: 5, Status: model.Status("archived")})
	m := NewMirror()
	m.Load(deals)

	cols := m.Columns()
	require.Len(t, cols, 4)

	assert.Equal(t, model.StatusInProgress, cols[0].Status)
	require.Len(t, cols[0].Items, 2)
	assert.Equal(t, int64(1), cols[0].Items[0].ID)
	assert.Equal(t, int64(4), cols[0].Items[1].ID)

	assert.Len(t, cols[1].Items, 1)
	assert.Len(t, cols[2].Items, 1)
	assert.Empty(t, cols[3].Items)
}
