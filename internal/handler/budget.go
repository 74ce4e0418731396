package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/metrics"
	"github.com/Jepersonsam/my-finance-app/internal/models"
	"github.com/Jepersonsam/my-finance-app/internal/store"
	"github.com/Jepersonsam/my-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BudgetHandler serves budget CRUD. Reads embed the derived
// consumption, recomputed from the user's transactions every time.
type BudgetHandler struct {
	Repo   *store.Repository[models.Budget]
	TxRepo *store.Repository[models.Transaction]
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{
		Repo:   store.NewRepository[models.Budget](db),
		TxRepo: store.NewRepository[models.Transaction](db),
	}
}

type budgetReq struct {
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Period    string  `json:"period"`
	StartDate string  `json:"startDate"`
}

func (r *budgetReq) validate() (time.Time, string) {
	r.Category = strings.TrimSpace(r.Category)

	if r.Category == "" || r.Amount == 0 || r.Period == "" || r.StartDate == "" {
		return time.Time{}, "Category, amount, period, and startDate are required"
	}
	if err := util.ValidateEnum(r.Period, "monthly", "yearly"); err != nil {
		return time.Time{}, "Period must be monthly or yearly"
	}
	if err := util.ValidateAmount(r.Amount); err != nil {
		return time.Time{}, "Amount must be greater than 0"
	}
	start, err := util.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, "StartDate must be in YYYY-MM-DD format"
	}
	return start, ""
}

type budgetResp struct {
	models.Budget
	metrics.BudgetUsage
}

func (h *BudgetHandler) toResp(b models.Budget, txs []models.Transaction) budgetResp {
	return budgetResp{
		Budget:      b,
		BudgetUsage: metrics.BudgetConsumption(b, txs, time.Now()),
	}
}

func (h *BudgetHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	records, err := h.Repo.List(user.ID)
	if err != nil {
		util.ServerError(c, err)
		return
	}
	txs, err := h.TxRepo.List(user.ID)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	out := make([]budgetResp, 0, len(records))
	for _, b := range records {
		out = append(out, h.toResp(b, txs))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BudgetHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	start, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record := models.Budget{
		UserID:    user.ID,
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    req.Period,
		StartDate: start,
	}
	if err := h.Repo.Create(&record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *BudgetHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Budget not found")
	if !ok {
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Budget not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	txs, err := h.TxRepo.List(user.ID)
	if err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResp(*record, txs))
}

func (h *BudgetHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Budget not found")
	if !ok {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	start, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Budget not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	record.Category = req.Category
	record.Amount = req.Amount
	record.Period = req.Period
	record.StartDate = start

	if err := h.Repo.Save(record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Budget not found")
	if !ok {
		return
	}

	if err := h.Repo.Delete(user.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Budget not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	util.Message(c, "Budget deleted successfully")
}
