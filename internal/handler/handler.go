package handler

import (
	"net/http"
	"strconv"

	"github.com/Jepersonsam/my-finance-app/internal/middleware"
	"github.com/Jepersonsam/my-finance-app/internal/models"
	"github.com/Jepersonsam/my-finance-app/internal/util"

	"github.com/gin-gonic/gin"
)

// requireUser fetches the authenticated user or answers 401.
func requireUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}

// pathID parses the :id path parameter. A malformed id is treated the
// same as a missing record, so notFoundMsg is sent.
func pathID(c *gin.Context, notFoundMsg string) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusNotFound, notFoundMsg)
		return 0, false
	}
	return uint(id), true
}
