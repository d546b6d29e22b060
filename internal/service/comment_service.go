package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"task-manager/internal/models"
	"task-manager/internal/policy"
)

// CommentService mirrors the task service at smaller scope: list-by-task,
// create, delete. Existence of the parent task is always resolved before
// visibility.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListByTask returns a task's comments ordered by creation time ascending.
func (s *CommentService) ListByTask(p policy.Principal, taskID uint) ([]models.Comment, error) {
	task, err := s.parentTask(taskID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTaskChildren(p, task) {
		return nil, ErrForbidden
	}

	comments := []models.Comment{}
	if err := s.db.Where("task_id = ?", taskID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Create adds an authored comment to a task the principal can see.
func (s *CommentService) Create(p policy.Principal, in CommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, invalid("Comment text is required.")
	}
	if utf8.RuneCountInString(in.Content) > 500 {
		return nil, invalid("Comment must be at most 500 characters.")
	}

	task, err := s.parentTask(in.TaskID)
	if err != nil {
		return nil, err
	}
	if !policy.CanCommentOnTask(p, task) {
		return nil, ErrForbidden
	}

	comment := models.Comment{
		TaskID:    in.TaskID,
		UserID:    p.UserID,
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment. Managers delete any; Workers only their own,
// and only on tasks assigned to them.
func (s *CommentService) Delete(p policy.Principal, id uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	task, err := s.parentTask(comment.TaskID)
	if err != nil {
		return err
	}
	if !policy.CanDeleteComment(p, &comment, task) {
		return ErrForbidden
	}

	return s.db.Delete(&comment).Error
}

func (s *CommentService) parentTask(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}
