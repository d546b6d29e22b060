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

// NoteService handles the titled notes attached to tasks. Notes carry no
// author, so Worker permission flows through assignment of the parent task.
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// ListByTask returns a task's notes ordered by creation time ascending.
func (s *NoteService) ListByTask(p policy.Principal, taskID uint) ([]models.Note, error) {
	task, err := s.parentTask(taskID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTaskChildren(p, task) {
		return nil, ErrForbidden
	}

	notes := []models.Note{}
	if err := s.db.Where("task_id = ?", taskID).Order("created_at ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Create adds a note to a task the principal may edit notes on.
func (s *NoteService) Create(p policy.Principal, in NoteInput) (*models.Note, error) {
	if err := validateNoteInput(in); err != nil {
		return nil, err
	}

	task, err := s.parentTask(in.TaskID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditNote(p, task) {
		return nil, ErrForbidden
	}

	ts := time.Now().UTC()
	note := models.Note{
		TaskID:    in.TaskID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces a note's title and content and refreshes updatedAt. The
// body must carry the note id and it must match the route.
func (s *NoteService) Update(p policy.Principal, id uint, in NoteInput) error {
	if in.ID != id {
		return invalid("Route id and note id must match.")
	}
	if err := validateNoteInput(in); err != nil {
		return err
	}

	var note models.Note
	if err := s.db.First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	task, err := s.parentTask(note.TaskID)
	if err != nil {
		return err
	}
	if !policy.CanEditNote(p, task) {
		return ErrForbidden
	}

	note.Title = in.Title
	note.Content = in.Content
	note.UpdatedAt = time.Now().UTC()
	return s.db.Save(&note).Error
}

// Delete removes a note; Manager, or Worker assigned to the parent task.
func (s *NoteService) Delete(p policy.Principal, id uint) error {
	var note models.Note
	if err := s.db.First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	task, err := s.parentTask(note.TaskID)
	if err != nil {
		return err
	}
	if !policy.CanEditNote(p, task) {
		return ErrForbidden
	}

	return s.db.Delete(&note).Error
}

func validateNoteInput(in NoteInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return invalid("Note title and content are required.")
	}
	if utf8.RuneCountInString(in.Title) > 100 {
		return invalid("Note title must be at most 100 characters.")
	}
	if utf8.RuneCountInString(in.Content) > 1000 {
		return invalid("Note content must be at most 1000 characters.")
	}
	return nil
}

func (s *NoteService) parentTask(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}
