package handlers

import (
	"net/http"
	"strconv"

	"task-manager/internal/realtime"
	"task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler is the thin HTTP layer over the task service. Role and
// ownership decisions live in the service/policy, not here.
type TaskHandler struct {
	tasks *service.TaskService
	hub   *realtime.Hub
}

func NewTaskHandler(tasks *service.TaskService, hub *realtime.Hub) *TaskHandler {
	return &TaskHandler{tasks: tasks, hub: hub}
}

// List handles GET /api/tasks?page&pageSize
func (h *TaskHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	result, err := h.tasks.List(p, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	view, err := h.tasks.Get(p, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Create handles POST /api/tasks (Manager-only, enforced by the service)
func (h *TaskHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload."})
		return
	}

	view, err := h.tasks.Create(p, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.hub.NotifyTask(realtime.EventTaskCreated, view.ID, view.UserID)
	c.JSON(http.StatusCreated, view)
}

// Update handles PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload."})
		return
	}

	if err := h.tasks.Update(p, id, in); err != nil {
		writeServiceError(c, err)
		return
	}

	if view, err := h.tasks.Get(p, id); err == nil {
		h.hub.NotifyTask(realtime.EventTaskUpdated, view.ID, view.UserID)
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/tasks/:id (Manager-only, enforced by the service)
func (h *TaskHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	// Resolve the assignee before the row disappears so the event still
	// reaches them.
	view, viewErr := h.tasks.Get(p, id)

	if err := h.tasks.Delete(p, id); err != nil {
		writeServiceError(c, err)
		return
	}

	if viewErr == nil {
		h.hub.NotifyTask(realtime.EventTaskDeleted, id, view.UserID)
	}
	c.Status(http.StatusNoContent)
}
