package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"task-manager/internal/auth"
	"task-manager/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler is the session boundary: credential checks and token
// issuance. The rest of the API only ever sees the resolved principal.
type AccountHandler struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

func NewAccountHandler(db *gorm.DB, tokenTTL time.Duration) *AccountHandler {
	return &AccountHandler{db: db, tokenTTL: tokenTTL}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"name" binding:"required"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role" binding:"required"`
}

// Login handles POST /api/account/login. Invalid email and invalid password
// produce the same message so the endpoint leaks nothing about accounts.
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	var user models.User
	err := h.db.Where("email = ?", strings.TrimSpace(req.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password."})
			return
		}
		writeServiceError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password."})
		return
	}

	token, err := auth.GenerateToken(&user, h.tokenTTL)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Login successful",
		"isAuthenticated": true,
		"token":           token,
		"role":            user.Role,
		"userId":          user.ID,
	})
}

// Register handles POST /api/account/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, name, password and role are required."})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be Manager or Worker."})
		return
	}

	email := strings.TrimSpace(req.Email)
	var existing int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		writeServiceError(c, err)
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered."})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	user := models.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := h.db.Create(&user).Error; err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration successful"})
}

// Logout handles POST /api/account/logout. Tokens are stateless; the client
// discards its copy.
func (h *AccountHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// CheckAuth handles GET /api/account/checkauth. It never answers 401: an
// anonymous caller simply gets isAuthenticated=false.
func (h *AccountHandler) CheckAuth(c *gin.Context) {
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		tokenString = c.Query("token")
	}

	if tokenString != "" {
		if claims, err := auth.ValidateToken(tokenString); err == nil {
			c.JSON(http.StatusOK, gin.H{"isAuthenticated": true, "role": claims.Role})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
}
