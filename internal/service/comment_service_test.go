package service

import (
	"testing"
	"time"

	"task-manager/internal/models"
	"task-manager/internal/policy"
	"task-manager/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentFixture(t *testing.T) (*gorm.DB, *CommentService, policy.Principal, policy.Principal) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	manager := models.User{Email: "boss@example.com", Name: "boss", PasswordHash: "x", Role: models.RoleManager}
	worker := models.User{Email: "w@example.com", Name: "worker", PasswordHash: "x", Role: models.RoleWorker}
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&worker).Error)

	return db, NewCommentService(db),
		policy.Principal{UserID: manager.ID, Role: models.RoleManager},
		policy.Principal{UserID: worker.ID, Role: models.RoleWorker}
}

func TestComments_ListOrderedByCreation(t *testing.T) {
	db, svc, manager, _ := newCommentFixture(t)
	task, err := testutil.SeedTask(db, "t", nil)
	require.NoError(t, err)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// Inserted newest-first to prove ordering comes from the query
	require.NoError(t, db.Create(&models.Comment{TaskID: task.ID, UserID: manager.UserID, Content: "second", CreatedAt: base.Add(time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Comment{TaskID: task.ID, UserID: manager.UserID, Content: "first", CreatedAt: base}).Error)

	comments, err := svc.ListByTask(manager, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "first", comments[0].Content)
	require.Equal(t, "second", comments[1].Content)
}

func TestComments_List404BeforeForbidden(t *testing.T) {
	db, svc, _, worker := newCommentFixture(t)

	_, err := svc.ListByTask(worker, 9999)
	require.ErrorIs(t, err, ErrNotFound)

	foreign, err := testutil.SeedTask(db, "foreign", nil)
	require.NoError(t, err)
	_, err = svc.ListByTask(worker, foreign.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestComments_CreateValidatesContent(t *testing.T) {
	db, svc, manager, _ := newCommentFixture(t)
	task, err := testutil.SeedTask(db, "t", nil)
	require.NoError(t, err)

	_, err = svc.Create(manager, CommentInput{TaskID: task.ID, Content: "   "})
	_, ok := AsValidation(err)
	require.True(t, ok)

	_, err = svc.Create(manager, CommentInput{TaskID: 9999, Content: "hello"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestComments_WorkerCreateOnlyOnAssignedTask(t *testing.T) {
	db, svc, _, worker := newCommentFixture(t)
	workerID := worker.UserID
	mine, err := testutil.SeedTask(db, "mine", &workerID)
	require.NoError(t, err)
	foreign, err := testutil.SeedTask(db, "foreign", nil)
	require.NoError(t, err)

	comment, err := svc.Create(worker, CommentInput{TaskID: mine.ID, Content: "on it"})
	require.NoError(t, err)
	require.Equal(t, workerID, comment.UserID)
	require.False(t, comment.CreatedAt.IsZero())

	_, err = svc.Create(worker, CommentInput{TaskID: foreign.ID, Content: "sneaky"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestComments_DeleteRules(t *testing.T) {
	db, svc, manager, worker := newCommentFixture(t)
	workerID := worker.UserID
	task, err := testutil.SeedTask(db, "mine", &workerID)
	require.NoError(t, err)

	own := models.Comment{TaskID: task.ID, UserID: workerID, Content: "mine", CreatedAt: time.Now().UTC()}
	foreign := models.Comment{TaskID: task.ID, UserID: manager.UserID, Content: "manager's", CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&own).Error)
	require.NoError(t, db.Create(&foreign).Error)

	require.ErrorIs(t, svc.Delete(worker, foreign.ID), ErrForbidden)
	require.NoError(t, svc.Delete(worker, own.ID))
	require.NoError(t, svc.Delete(manager, foreign.ID))
	require.ErrorIs(t, svc.Delete(manager, own.ID), ErrNotFound)
}
