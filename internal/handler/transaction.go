package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/models"
	"github.com/Jepersonsam/my-finance-app/internal/store"
	"github.com/Jepersonsam/my-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves transaction CRUD.
type TransactionHandler struct {
	Repo *store.Repository[models.Transaction]
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{Repo: store.NewRepository[models.Transaction](db)}
}

type transactionReq struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// validate enforces the required fields before anything is written.
func (r *transactionReq) validate() (time.Time, string) {
	r.Category = strings.TrimSpace(r.Category)

	if r.Type == "" || r.Category == "" || r.Amount == 0 || r.Date == "" {
		return time.Time{}, "Type, category, amount, and date are required"
	}
	if err := util.ValidateEnum(r.Type, "income", "expense"); err != nil {
		return time.Time{}, "Type must be income or expense"
	}
	if err := util.ValidateAmount(r.Amount); err != nil {
		return time.Time{}, "Amount must be greater than 0"
	}
	date, err := util.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, "Date must be in YYYY-MM-DD format"
	}
	return date, ""
}

// List returns the caller's transactions, optionally bounded by the
// inclusive startDate/endDate query parameters.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var scopes []store.Scope

	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr != "" && endStr != "" {
		start, err := util.ParseDate(startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "startDate must be in YYYY-MM-DD format")
			return
		}
		end, err := util.ParseDate(endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "endDate must be in YYYY-MM-DD format")
			return
		}
		scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
			return q.Where("date >= ? AND date <= ?", start, end)
		})
	}

	// newest activity first, creation order breaks ties
	scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
		return q.Order("date DESC")
	})

	records, err := h.Repo.List(user.ID, scopes...)
	if err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record := models.Transaction{
		UserID:      user.ID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}
	if err := h.Repo.Create(&record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Transaction not found")
	if !ok {
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Transaction not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Transaction not found")
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Transaction not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	record.Type = req.Type
	record.Category = req.Category
	record.Amount = req.Amount
	record.Description = req.Description
	record.Date = date

	if err := h.Repo.Save(record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Transaction not found")
	if !ok {
		return
	}

	if err := h.Repo.Delete(user.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Transaction not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	util.Message(c, "Transaction deleted successfully")
}
