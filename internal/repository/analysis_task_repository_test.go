package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/oceandiag/ocean-diagnostics-go/internal/database"
	"github.com/oceandiag/ocean-diagnostics-go/internal/models"
)

func testRepo(t *testing.T) *AnalysisTaskRepository {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return NewAnalysisTaskRepository(db)
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)

	task := &models.AnalysisTask{
		Diagnostic: models.DiagnosticDoodsonX0,
		Status:     models.TaskStatusPending,
		ParamsJSON: `{"series":[1,2,3]}`,
		CreatedBy:  "tester",
	}
	require.NoError(t, repo.Create(task))
	require.NotZero(t, task.ID)

	got, err := repo.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Diagnostic, got.Diagnostic)
	assert.Equal(t, models.TaskStatusPending, got.Status)
	assert.Equal(t, task.ParamsJSON, got.ParamsJSON)
	assert.Equal(t, "tester", got.CreatedBy)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)
	_, err := repo.GetByID(12345)
	assert.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)

	task := &models.AnalysisTask{
		Diagnostic: models.DiagnosticTrackSummary,
		Status:     models.TaskStatusPending,
	}
	require.NoError(t, repo.Create(task))

	require.NoError(t, repo.MarkAsRunning(task.ID))
	got, err := repo.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusRunning, got.Status)
	assert.NotZero(t, got.StartTime)

	require.NoError(t, repo.MarkAsCompleted(task.ID, `{"path_km":0}`))
	got, err = repo.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, got.Status)
	assert.Equal(t, `{"path_km":0}`, got.ResultJSON)
	assert.NotZero(t, got.EndTime)
}

func TestMarkAsFailed(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)

	task := &models.AnalysisTask{
		Diagnostic: models.DiagnosticRadiusSubset,
		Status:     models.TaskStatusPending,
	}
	require.NoError(t, repo.Create(task))
	require.NoError(t, repo.MarkAsFailed(task.ID, "shape mismatch"))

	got, err := repo.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusFailed, got.Status)
	assert.Equal(t, "shape mismatch", got.ErrorMessage)
}

func TestList(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)

	for _, d := range []string{
		models.DiagnosticDoodsonX0,
		models.DiagnosticDoodsonX0,
		models.DiagnosticTrackSummary,
	} {
		require.NoError(t, repo.Create(&models.AnalysisTask{
			Diagnostic: d,
			Status:     models.TaskStatusPending,
		}))
	}

	t.Run("no filter", func(t *testing.T) {
		tasks, err := repo.List("", "", 100, 0)
		require.NoError(t, err)
		assert.Len(t, tasks, 3)
	})

	t.Run("by diagnostic", func(t *testing.T) {
		tasks, err := repo.List(models.DiagnosticDoodsonX0, "", 100, 0)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("by status", func(t *testing.T) {
		tasks, err := repo.List("", models.TaskStatusFailed, 100, 0)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("limit", func(t *testing.T) {
		tasks, err := repo.List("", "", 2, 0)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})
}
