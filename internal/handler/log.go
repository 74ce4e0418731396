package handler

import (
	"net/http"
	"strconv"

	"github.com/Jepersonsam/my-finance-app/internal/models"
	"github.com/Jepersonsam/my-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler lists the caller's audit trail.
type LogHandler struct {
	DB *gorm.DB
}

func NewLogHandler(db *gorm.DB) *LogHandler {
	return &LogHandler{DB: db}
}

// List returns the caller's audit entries, newest first, paginated
// with ?page= and ?size=.
func (h *LogHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if size < 1 || size > 100 {
		size = 20
	}

	base := h.DB.Model(&models.AuditLog{}).Where("user_id = ?", user.ID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	var entries []models.AuditLog
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&entries).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": entries,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
