package handlers

import (
	"net/http"
	"strings"

	"cargolink/internal/db"
	"cargolink/internal/models"
	"cargolink/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=Exportator Mediator"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal error")
		return
	}

	// Default username from the email local part, editable later
	username := strings.SplitN(req.Email, "@", 2)[0]

	user := models.User{
		Username: username,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		Country:  req.Country,
		Phone:    req.Phone,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		RespondError(c, http.StatusConflict, "email already registered")
		return
	}

	h.startSession(c, &user)
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		RespondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.startSession(c, &user)
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the session user, the entry point the client calls on load.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

func (h *AuthHandler) startSession(c *gin.Context, user *models.User) {
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()
}
