package repository

import (
	"testing"
	"time"

	"go-store-console/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryActivityRepoNewestFirst(t *testing.T) {
	repo := NewMemoryActivityRepo(3)
	session := uuid.New()

	for i, action := range []model.ActivityAction{
		model.ActivityLogin, model.ActivityProductSaved, model.ActivitySaleProcessed, model.ActivityLogout,
	} {
		entry := &model.ActivityEntry{SessionID: session, Action: action, Amount: float64(i)}
		require.NoError(t, repo.Record(entry))
		assert.NotEqual(t, uuid.Nil, entry.ID)
	}

	entries, err := repo.FindRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, model.ActivityLogout, entries[0].Action)
	assert.Equal(t, model.ActivityProductSaved, entries[2].Action)

	entries, err = repo.FindRecent(1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryActivityRepoBySession(t *testing.T) {
	repo := NewMemoryActivityRepo(0)
	a, b := uuid.New(), uuid.New()
	require.NoError(t, repo.Record(&model.ActivityEntry{SessionID: a, Action: model.ActivityLogin}))
	require.NoError(t, repo.Record(&model.ActivityEntry{SessionID: b, Action: model.ActivityLogin}))
	require.NoError(t, repo.Record(&model.ActivityEntry{SessionID: a, Action: model.ActivityLogout}))

	entries, err := repo.FindBySession(a, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, a, e.SessionID)
	}
}

func TestMemoryActivityRepoSummarize(t *testing.T) {
	repo := NewMemoryActivityRepo(0)
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Record(&model.ActivityEntry{Action: model.ActivitySaleProcessed, Amount: 100, BaseModel: model.BaseModel{CreatedAt: old}}))
	require.NoError(t, repo.Record(&model.ActivityEntry{Action: model.ActivitySaleProcessed, Amount: 19.44}))
	require.NoError(t, repo.Record(&model.ActivityEntry{Action: model.ActivitySaleProcessed, Amount: 18.36}))
	require.NoError(t, repo.Record(&model.ActivityEntry{Action: model.ActivityCustomerSaved}))

	summary, err := repo.Summarize(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, model.ActivityCustomerSaved, summary[0].Action)
	assert.Equal(t, int64(2), summary[1].Count)
	assert.InDelta(t, 37.8, summary[1].Amount, 1e-9)
}
