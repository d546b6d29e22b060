package service

import (
	"strings"
	"testing"
	"time"

	"task-manager/internal/models"
	"task-manager/internal/policy"
	"task-manager/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogFixture(t *testing.T) (*gorm.DB, *CatalogService, policy.Principal, policy.Principal) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	return db, NewCatalogService(db, time.Minute),
		policy.Principal{UserID: 1, Role: models.RoleManager},
		policy.Principal{UserID: 2, Role: models.RoleWorker}
}

func TestCatalog_CategoryCRUD(t *testing.T) {
	_, svc, manager, worker := newCatalogFixture(t)

	created, err := svc.CreateCategory(manager, "  Ops  ")
	require.NoError(t, err)
	require.Equal(t, "Ops", created.Name)

	_, err = svc.CreateCategory(worker, "Sales")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateCategory(manager, "   ")
	_, ok := AsValidation(err)
	require.True(t, ok)

	list, err := svc.Categories()
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteCategory(manager, created.ID))
	require.ErrorIs(t, svc.DeleteCategory(manager, created.ID), ErrNotFound)
}

func TestCatalog_NameLimitCountsCharacters(t *testing.T) {
	_, svc, manager, _ := newCatalogFixture(t)

	// 50 multibyte characters is within the limit even though it is 100 bytes
	tag, err := svc.CreateTag(manager, strings.Repeat("ü", 50))
	require.NoError(t, err)
	require.NotZero(t, tag.ID)

	_, err = svc.CreateTag(manager, strings.Repeat("ü", 51))
	_, ok := AsValidation(err)
	require.True(t, ok)
}

func TestCatalog_CategoryDeleteRestrictedWhenReferenced(t *testing.T) {
	db, svc, manager, _ := newCatalogFixture(t)

	category, err := svc.CreateCategory(manager, "Ops")
	require.NoError(t, err)

	task, err := testutil.SeedTask(db, "t", nil)
	require.NoError(t, err)
	require.NoError(t, db.Model(task).Update("category_id", category.ID).Error)

	err = svc.DeleteCategory(manager, category.ID)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Contains(t, ve.Message, "referenced")
}

func TestCatalog_ListInvalidatedOnMutation(t *testing.T) {
	_, svc, manager, _ := newCatalogFixture(t)

	list, err := svc.Tags()
	require.NoError(t, err)
	require.Empty(t, list)

	// A second read hits the cache; a mutation must bust it
	_, err = svc.Tags()
	require.NoError(t, err)

	tag, err := svc.CreateTag(manager, "urgent")
	require.NoError(t, err)

	list, err = svc.Tags()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, tag.ID, list[0].ID)
}

func TestCatalog_TagDeleteClearsJoinRows(t *testing.T) {
	db, svc, manager, _ := newCatalogFixture(t)

	tag, err := svc.CreateTag(manager, "urgent")
	require.NoError(t, err)
	task, err := testutil.SeedTask(db, "t", nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.TaskTag{TaskID: task.ID, TagID: tag.ID}).Error)

	require.NoError(t, svc.DeleteTag(manager, tag.ID))

	var joins int64
	require.NoError(t, db.Model(&models.TaskTag{}).Where("tag_id = ?", tag.ID).Count(&joins).Error)
	require.Zero(t, joins)
}
