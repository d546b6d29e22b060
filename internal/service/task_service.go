package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"task-manager/internal/models"
	"task-manager/internal/policy"
)

// TaskService builds filtered, paginated task listings and owns all task
// mutations. Every method resolves existence before authorization so the
// 401 -> 404 -> 403 ordering holds across the API.
type TaskService struct {
	db              *gorm.DB
	defaultPageSize int
	maxPageSize     int
}

func NewTaskService(db *gorm.DB, defaultPageSize, maxPageSize int) *TaskService {
	return &TaskService{
		db:              db,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// visible narrows a task query to what the principal may read: Workers only
// see tasks assigned to them, Managers see everything.
func (s *TaskService) visible(p policy.Principal) *gorm.DB {
	query := s.db.Model(&models.Task{})
	if p.IsWorker() {
		query = query.Where("user_id = ?", p.UserID)
	}
	return query
}

// List returns one page of the principal's visible tasks, ordered by id
// ascending so paging is reproducible. Total counts the whole filtered set.
func (s *TaskService) List(p policy.Principal, page, pageSize int) (TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	query := s.visible(p)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return TaskPage{}, err
	}

	var tasks []models.Task
	offset := (page - 1) * pageSize
	if err := query.Session(&gorm.Session{}).Order("id ASC").Limit(pageSize).Offset(offset).Find(&tasks).Error; err != nil {
		return TaskPage{}, err
	}

	ids := make([]uint, 0, len(tasks))
	for i := range tasks {
		ids = append(ids, tasks[i].ID)
	}
	tagsByTask, err := s.tagIDsFor(ids)
	if err != nil {
		return TaskPage{}, err
	}

	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, taskView(&tasks[i], tagsByTask[tasks[i].ID]))
	}

	return TaskPage{Tasks: views, Total: total, Page: page}, nil
}

// Get returns a single task view. Absent tasks are reported before
// visibility, so Workers can distinguish 404 from 403.
func (s *TaskService) Get(p policy.Principal, id uint) (TaskView, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskView{}, ErrNotFound
		}
		return TaskView{}, err
	}
	if !policy.CanViewTask(p, &task) {
		return TaskView{}, ErrForbidden
	}

	tagsByTask, err := s.tagIDsFor([]uint{task.ID})
	if err != nil {
		return TaskView{}, err
	}
	return taskView(&task, tagsByTask[task.ID]), nil
}

// Create persists a new task and its tag join rows in one transaction.
// Manager-only.
func (s *TaskService) Create(p policy.Principal, in TaskInput) (TaskView, error) {
	if !policy.CanCreateTask(p) {
		return TaskView{}, ErrForbidden
	}

	in.TagIDs = dedupe(in.TagIDs)
	due, err := s.validateInput(&in)
	if err != nil {
		return TaskView{}, err
	}
	if err := s.validateRefs(&in); err != nil {
		return TaskView{}, err
	}

	task := models.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DueDate:     due,
		IsCompleted: in.IsCompleted,
		UserID:      in.UserID,
		CategoryID:  in.CategoryID,
		Notes:       in.Notes,
		Progress:    in.Progress,
		Priority:    in.Priority,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return replaceTags(tx, task.ID, in.TagIDs)
	})
	if err != nil {
		return TaskView{}, err
	}

	return taskView(&task, in.TagIDs), nil
}

// Update applies the role-restricted field subset. Managers may change
// everything including the tag set (replaced wholesale when tagIds is
// present); Workers only the completion flag, notes and progress. The body
// must carry the task id and it must match the route.
func (s *TaskService) Update(p policy.Principal, id uint, in TaskInput) error {
	if in.ID != id {
		return invalid("Route id and task id must match.")
	}

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !policy.CanUpdateTask(p, &task) {
		return ErrForbidden
	}

	if !policy.CanEditAllTaskFields(p) {
		if in.Progress < 0 || in.Progress > 100 {
			return invalid("Progress must be between 0 and 100.")
		}
		if utf8.RuneCountInString(in.Notes) > 1000 {
			return invalid("Notes must be at most 1000 characters.")
		}
		task.IsCompleted = in.IsCompleted
		task.Notes = in.Notes
		task.Progress = in.Progress
		return s.db.Save(&task).Error
	}

	in.TagIDs = dedupe(in.TagIDs)
	due, err := s.validateInput(&in)
	if err != nil {
		return err
	}
	if err := s.validateRefs(&in); err != nil {
		return err
	}

	task.Title = strings.TrimSpace(in.Title)
	task.Description = in.Description
	task.DueDate = due
	task.IsCompleted = in.IsCompleted
	task.UserID = in.UserID
	task.CategoryID = in.CategoryID
	task.Notes = in.Notes
	task.Progress = in.Progress
	task.Priority = in.Priority

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		if in.TagIDs != nil {
			return replaceTags(tx, task.ID, in.TagIDs)
		}
		return nil
	})
}

// Delete removes a task and its comments, notes and tag join rows in one
// transaction. Manager-only.
func (s *TaskService) Delete(p policy.Principal, id uint) error {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !policy.CanDeleteTask(p) {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}

// tagIDsFor loads the flattened tag ids for a set of tasks in one query.
func (s *TaskService) tagIDsFor(taskIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(taskIDs))
	if len(taskIDs) == 0 {
		return out, nil
	}
	var joins []models.TaskTag
	if err := s.db.Where("task_id IN ?", taskIDs).Order("tag_id ASC").Find(&joins).Error; err != nil {
		return nil, err
	}
	for _, j := range joins {
		out[j.TaskID] = append(out[j.TaskID], j.TagID)
	}
	return out, nil
}

// validateInput checks the Manager-editable fields and parses the due date.
func (s *TaskService) validateInput(in *TaskInput) (time.Time, error) {
	if strings.TrimSpace(in.Title) == "" {
		return time.Time{}, invalid("Title is required.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Title)) > 100 {
		return time.Time{}, invalid("Title must be at most 100 characters.")
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		return time.Time{}, invalid("Description must be at most 500 characters.")
	}
	if utf8.RuneCountInString(in.Notes) > 1000 {
		return time.Time{}, invalid("Notes must be at most 1000 characters.")
	}
	due, ok := parseDueDate(in.DueDate)
	if !ok {
		return time.Time{}, invalid("DueDate is required and must be a valid date.")
	}
	if in.Progress < 0 || in.Progress > 100 {
		return time.Time{}, invalid("Progress must be between 0 and 100.")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(in.Priority) {
		return time.Time{}, invalid("Priority must be one of High, Medium or Low.")
	}
	return due, nil
}

// validateRefs verifies that every referenced user, category and tag id
// exists, collecting all invalid ids into a single message.
func (s *TaskService) validateRefs(in *TaskInput) error {
	var bad []string

	if in.UserID != nil {
		ok, err := rowExists(s.db, &models.User{}, *in.UserID)
		if err != nil {
			return err
		}
		if !ok {
			bad = append(bad, fmt.Sprintf("userId %d", *in.UserID))
		}
	}
	if in.CategoryID != nil {
		ok, err := rowExists(s.db, &models.Category{}, *in.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			bad = append(bad, fmt.Sprintf("categoryId %d", *in.CategoryID))
		}
	}
	if len(in.TagIDs) > 0 {
		var found []uint
		if err := s.db.Model(&models.Tag{}).Where("id IN ?", in.TagIDs).Pluck("id", &found).Error; err != nil {
			return err
		}
		known := make(map[uint]bool, len(found))
		for _, id := range found {
			known[id] = true
		}
		for _, id := range in.TagIDs {
			if !known[id] {
				bad = append(bad, fmt.Sprintf("tagId %d", id))
			}
		}
	}

	if len(bad) > 0 {
		return invalid("Invalid references: %s.", strings.Join(bad, ", "))
	}
	return nil
}

func rowExists(db *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// replaceTags swaps the whole join set for a task. Must run inside the
// caller's transaction so the clear and insert are never observably split.
func replaceTags(tx *gorm.DB, taskID uint, tagIDs []uint) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	joins := make([]models.TaskTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		joins = append(joins, models.TaskTag{TaskID: taskID, TagID: id})
	}
	return tx.Create(&joins).Error
}

// dedupe drops repeated tag ids while preserving order. nil stays nil so
// "tagIds omitted" remains distinguishable from "tagIds: []".
func dedupe(ids []uint) []uint {
	if ids == nil {
		return nil
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
