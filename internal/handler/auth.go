package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/middleware"
	"github.com/Jepersonsam/my-finance-app/internal/models"
	"github.com/Jepersonsam/my-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves register/login and the current-user endpoint.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, expireDays, bcryptCost int) *AuthHandler {
	if expireDays <= 0 {
		expireDays = 30
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(expireDays) * 24 * time.Hour,
		BcryptCost: bcryptCost,
	}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userBody(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" || req.Email == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < 6 {
		util.Error(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(email) = ?", req.Email).
		Count(&count).Error; err != nil {
		util.ServerError(c, err)
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Email, h.TokenTTL)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userBody(&user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	if err := h.DB.Where("LOWER(email) = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, "Invalid email or password")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Email, h.TokenTTL)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userBody(&user),
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userBody(user)})
}
