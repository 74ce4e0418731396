package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jepersonsam/my-finance-app/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuditTestDB(t *testing.T, withAuditTable bool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	tables := []any{&models.User{}}
	if withAuditTable {
		tables = append(tables, &models.AuditLog{})
	}
	require.NoError(t, db.AutoMigrate(tables...))
	return db
}

func newAuditEngine(db *gorm.DB, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(CurrentUserKey, user)
		}
	}, Audit(db))
	r.POST("/things", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/things", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAuditRecordsMutation(t *testing.T) {
	db := newAuditTestDB(t, true)
	user := models.User{Email: "a@example.com", Name: "A", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	r := newAuditEngine(db, &user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/things", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var entries []models.AuditLog
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, user.ID, entries[0].UserID)
	assert.Equal(t, "POST", entries[0].Method)
	assert.Equal(t, "/things", entries[0].Path)
	assert.Equal(t, http.StatusCreated, entries[0].Status)
	assert.NotEmpty(t, entries[0].RequestID)
}

func TestAuditSkipsReads(t *testing.T) {
	db := newAuditTestDB(t, true)
	user := models.User{Email: "a@example.com", Name: "A", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	r := newAuditEngine(db, &user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuditWriteFailureDoesNotFailRequest(t *testing.T) {
	// no audit_logs table, so the write fails
	db := newAuditTestDB(t, false)
	user := models.User{Email: "a@example.com", Name: "A", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	r := newAuditEngine(db, &user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/things", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, buf.String(), "audit write failed")
}
