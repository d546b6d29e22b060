package handlers

import (
	"errors"
	"net/http"

	"task-manager/internal/models"
	"task-manager/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler serves the read-only user directory used by assignment
// dropdowns.
type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("id ASC").Find(&users).Error; err != nil {
		writeServiceError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No users found."})
		return
	}

	views := make([]service.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, service.UserView{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	c.JSON(http.StatusOK, views)
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.UserView{ID: user.ID, Name: user.Name, Email: user.Email})
}
