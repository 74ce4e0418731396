package middleware

import (
	"log"

	"github.com/Jepersonsam/my-finance-app/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit tags each request with an id and records mutating requests of
// authenticated users. Read-only requests are not logged.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Header("X-Request-ID", requestID)

		c.Next()

		user, ok := CurrentUser(c)
		if !ok {
			return
		}
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" {
			return
		}

		entry := models.AuditLog{
			RequestID: requestID,
			UserID:    user.ID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		// best effort: a failed audit write must not fail the request,
		// but it has to show up in the server log
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("audit write failed: %s %s: %v", entry.Method, entry.Path, err)
		}
	}
}
