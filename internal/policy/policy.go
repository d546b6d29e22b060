// Package policy holds the role and ownership rules as pure functions of
// (principal, resource). Every service method consults these instead of
// repeating role branches per endpoint. The functions perform no I/O, so an
// authorization failure can never mutate state.
package policy

import "task-manager/internal/models"

// Principal is the authenticated identity resolved from a session token.
type Principal struct {
	UserID uint
	Name   string
	Role   models.Role
}

func (p Principal) IsManager() bool {
	return p.Role == models.RoleManager
}

func (p Principal) IsWorker() bool {
	return p.Role == models.RoleWorker
}

// assignedTo reports whether the task is assigned to the principal.
func assignedTo(p Principal, t *models.Task) bool {
	return t.UserID != nil && *t.UserID == p.UserID
}

// CanViewTask is the read-visibility predicate: Managers see everything,
// Workers only tasks assigned to them.
func CanViewTask(p Principal, t *models.Task) bool {
	return p.IsManager() || assignedTo(p, t)
}

// CanCreateTask: only Managers create tasks.
func CanCreateTask(p Principal) bool {
	return p.IsManager()
}

// CanUpdateTask: Managers update any task, Workers only their own. Which
// fields a Worker may touch is decided by CanEditAllTaskFields.
func CanUpdateTask(p Principal, t *models.Task) bool {
	return p.IsManager() || assignedTo(p, t)
}

// CanEditAllTaskFields: Workers are limited to the completion flag, the
// free-text notes and the progress value; everything else is Manager-only.
func CanEditAllTaskFields(p Principal) bool {
	return p.IsManager()
}

// CanDeleteTask: only Managers delete tasks.
func CanDeleteTask(p Principal) bool {
	return p.IsManager()
}

// CanViewTaskChildren covers comments and notes of a task; same visibility
// as the task itself.
func CanViewTaskChildren(p Principal, t *models.Task) bool {
	return CanViewTask(p, t)
}

// CanCommentOnTask: anyone who can see the task may comment on it.
func CanCommentOnTask(p Principal, t *models.Task) bool {
	return CanViewTask(p, t)
}

// CanDeleteComment: Managers delete any comment; Workers only comments they
// authored, and only on tasks assigned to them.
func CanDeleteComment(p Principal, c *models.Comment, parent *models.Task) bool {
	if p.IsManager() {
		return true
	}
	return c.UserID == p.UserID && assignedTo(p, parent)
}

// CanEditNote covers note create, update and delete. Notes carry no author,
// so Workers qualify through assignment of the parent task.
func CanEditNote(p Principal, parent *models.Task) bool {
	return p.IsManager() || assignedTo(p, parent)
}

// CanManageCatalog: category and tag mutations are Manager-only.
func CanManageCatalog(p Principal) bool {
	return p.IsManager()
}
