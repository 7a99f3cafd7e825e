package documents_test

import (
	"context"
	"testing"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/docstore/memory"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
	"gig-coordinator/internal/storage/documents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepoTest(t *testing.T) (context.Context, *memory.Store) {
	t.Helper()
	store := memory.New()
	t.Cleanup(func() { _ = store.Close() })
	return context.Background(), store
}

func TestApplicationRepo_NormalizesLegacyStatus(t *testing.T) {
	ctx, store := setupRepoTest(t)
	repo := documents.NewApplicationRepo(store, nil)

	require.NoError(t, store.Set(ctx, storage.CollectionApplications, "a1",
		[]byte(`{"jobId":"j1","applicantUid":"w1","status":"pending"}`)))

	app, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", app.ID)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)

	apps, err := repo.ListByJob(ctx, "j1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, models.ApplicationStatusApplied, apps[0].Status)
}

func TestJobRepo_NotFoundAndHireState(t *testing.T) {
	ctx, store := setupRepoTest(t)
	repo := documents.NewJobRepo(store, nil)

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	err = repo.SetOwner(ctx, "missing", "u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.Job{ID: "j1", EmployerUID: "e1", HireStatus: models.JobHireStatusOpen}))
	hireID := "h1"
	require.NoError(t, repo.SetHireState(ctx, "j1", models.JobHireStatusProposed, &hireID, now))

	job, err := repo.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobHireStatusProposed, job.HireStatus)
	assert.True(t, job.ActiveHireIs("h1"))

	require.NoError(t, repo.SetHireState(ctx, "j1", models.JobHireStatusOpen, nil, now))
	job, err = repo.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Nil(t, job.ActiveHireID)
	assert.Equal(t, "e1", job.EmployerUID)
}

func TestRepos_ListInsideTransactionIsRejected(t *testing.T) {
	ctx, store := setupRepoTest(t)
	repo := documents.NewHireRepo(store, nil)

	err := store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		_, err := repo.WithTx(tx).ListProposals(ctx, "w1")
		return err
	})
	assert.ErrorIs(t, err, storage.ErrListUnsupported)
}

func TestConversationRepo_ListForParticipant(t *testing.T) {
	ctx, store := setupRepoTest(t)
	repo := documents.NewConversationRepo(store, nil)

	require.NoError(t, repo.Create(ctx, &models.Conversation{ID: "e1_w1", EmployerUID: "e1", WorkerUID: "w1"}))
	require.NoError(t, repo.Create(ctx, &models.Conversation{ID: "w1_x", EmployerUID: "w1", WorkerUID: "x"}))
	require.NoError(t, repo.Create(ctx, &models.Conversation{ID: "e2_w2", EmployerUID: "e2", WorkerUID: "w2"}))

	convs, err := repo.ListForParticipant(ctx, "w1")
	require.NoError(t, err)
	ids := []string{}
	for _, c := range convs {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"e1_w1", "w1_x"}, ids)
}
