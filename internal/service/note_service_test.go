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

func newNoteFixture(t *testing.T) (*gorm.DB, *NoteService, policy.Principal, policy.Principal) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	manager := models.User{Email: "boss@example.com", Name: "boss", PasswordHash: "x", Role: models.RoleManager}
	worker := models.User{Email: "w@example.com", Name: "worker", PasswordHash: "x", Role: models.RoleWorker}
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&worker).Error)

	return db, NewNoteService(db),
		policy.Principal{UserID: manager.ID, Role: models.RoleManager},
		policy.Principal{UserID: worker.ID, Role: models.RoleWorker}
}

func TestNotes_CreateAndList(t *testing.T) {
	db, svc, manager, _ := newNoteFixture(t)
	task, err := testutil.SeedTask(db, "t", nil)
	require.NoError(t, err)

	first, err := svc.Create(manager, NoteInput{TaskID: task.ID, Title: "checklist", Content: "step 1"})
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.Equal(t, first.CreatedAt, first.UpdatedAt)

	_, err = svc.Create(manager, NoteInput{TaskID: task.ID, Title: "later", Content: "step 2"})
	require.NoError(t, err)

	notes, err := svc.ListByTask(manager, task.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "checklist", notes[0].Title)
}

func TestNotes_CreateValidation(t *testing.T) {
	db, svc, manager, _ := newNoteFixture(t)
	task, err := testutil.SeedTask(db, "t", nil)
	require.NoError(t, err)

	for _, in := range []NoteInput{
		{TaskID: task.ID, Title: "", Content: "c"},
		{TaskID: task.ID, Title: "t", Content: "  "},
	} {
		_, err := svc.Create(manager, in)
		_, ok := AsValidation(err)
		require.True(t, ok)
	}

	_, err = svc.Create(manager, NoteInput{TaskID: 9999, Title: "t", Content: "c"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNotes_UpdateRefreshesTimestamp(t *testing.T) {
	db, svc, manager, _ := newNoteFixture(t)
	task, err := testutil.SeedTask(db, "t", nil)
	require.NoError(t, err)

	created := models.Note{
		TaskID:    task.ID,
		Title:     "old",
		Content:   "old content",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&created).Error)

	require.NoError(t, svc.Update(manager, created.ID, NoteInput{ID: created.ID, Title: "new", Content: "new content"}))

	var got models.Note
	require.NoError(t, db.First(&got, created.ID).Error)
	require.Equal(t, "new", got.Title)
	require.Equal(t, "new content", got.Content)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestNotes_UpdateIDMismatch(t *testing.T) {
	db, svc, manager, _ := newNoteFixture(t)
	task, err := testutil.SeedTask(db, "t", nil)
	require.NoError(t, err)

	note, err := svc.Create(manager, NoteInput{TaskID: task.ID, Title: "t", Content: "c"})
	require.NoError(t, err)

	err = svc.Update(manager, note.ID, NoteInput{ID: note.ID + 5, Title: "t", Content: "c"})
	_, ok := AsValidation(err)
	require.True(t, ok)

	// Omitting the id from the body is a mismatch, not a pass
	err = svc.Update(manager, note.ID, NoteInput{Title: "t", Content: "c"})
	_, ok = AsValidation(err)
	require.True(t, ok)
}

func TestNotes_WorkerRulesFollowTaskAssignment(t *testing.T) {
	db, svc, _, worker := newNoteFixture(t)
	workerID := worker.UserID
	mine, err := testutil.SeedTask(db, "mine", &workerID)
	require.NoError(t, err)
	foreign, err := testutil.SeedTask(db, "foreign", nil)
	require.NoError(t, err)

	note, err := svc.Create(worker, NoteInput{TaskID: mine.ID, Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Create(worker, NoteInput{TaskID: foreign.ID, Title: "t", Content: "c"})
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Update(worker, note.ID, NoteInput{ID: note.ID, Title: "t2", Content: "c2"}))
	require.NoError(t, svc.Delete(worker, note.ID))
	require.ErrorIs(t, svc.Delete(worker, note.ID), ErrNotFound)
}
