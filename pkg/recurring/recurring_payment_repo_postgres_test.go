package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/penna/penna/internal/test_utils"
	"github.com/penna/penna/pkg/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

// Runs the repository against a real postgres instance. The in-memory sqlite
// tests cover the query logic; this one catches dialect drift between the two
// engines (placeholder handling, booleans, nullable text).
func setupPostgresRepository(t *testing.T) (*RepoImpl, context.Context, string) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	container, openDB := test_utils.TestWithDB()
	testcontainers.CleanupContainer(t, container)
	db := openDB()
	t.Cleanup(func() {
		db.Close()
	})

	ctx := context.Background()
	testUser, err := test_utils.TestUserProvider{}.GetCurrentUser(ctx)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (id, username, display_name, timezone, currency) VALUES ($1, $2, $3, $4, $5)`,
		testUser.Id, testUser.Username, testUser.DisplayName, testUser.Settings.Timezone, testUser.Settings.Currency)
	require.NoError(t, err)

	return NewRepo(db), ctx, testUser.Id
}

func TestRepoImpl_Postgres(t *testing.T) {
	repo, ctx, userId := setupPostgresRepository(t)

	// given
	payment := salaryPayment()

	// when
	id, err := repo.Store(ctx, userId, payment)

	// then
	require.NoError(t, err)
	stored, err := repo.Get(ctx, userId, id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.Id)
	assert.Equal(t, "Salary", stored.Name)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("4321.50")))
	assert.Equal(t, KindIncome, stored.Kind)
	assert.Equal(t, schedule.FrequencyMonthly, stored.Schedule.Frequency)
	assert.Equal(t, schedule.PolicyLastBusinessDay, stored.Schedule.Policy)
	require.NotNil(t, stored.Schedule.End)
	assert.Equal(t, schedule.Date{Year: 2027, Month: time.December, Day: 31}, *stored.Schedule.End)
	assert.True(t, stored.Active)

	// inactive payments are filtered unless asked for
	stored.Active = false
	updated, err := repo.Update(ctx, userId, stored)
	require.NoError(t, err)
	assert.True(t, updated)

	active, err := repo.GetAll(ctx, userId, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.GetAll(ctx, userId, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	// delete is idempotent-safe: second call reports nothing removed
	deleted, err := repo.Delete(ctx, userId, id)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, userId, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
