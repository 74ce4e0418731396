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

// DebtHandler serves debt CRUD plus payments.
type DebtHandler struct {
	Repo *store.Repository[models.Debt]
}

func NewDebtHandler(db *gorm.DB) *DebtHandler {
	return &DebtHandler{Repo: store.NewRepository[models.Debt](db)}
}

type debtReq struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	TotalAmount  float64 `json:"totalAmount"`
	PaidAmount   float64 `json:"paidAmount"`
	DueDate      string  `json:"dueDate"`
	InterestRate float64 `json:"interestRate"`
	Reminder     *bool   `json:"reminder"`
	Description  string  `json:"description"`
}

func (r *debtReq) validate() (*time.Time, string) {
	r.Name = strings.TrimSpace(r.Name)

	if r.Name == "" || r.Type == "" || r.TotalAmount == 0 || r.DueDate == "" {
		return nil, "Name, type, totalAmount, and dueDate are required"
	}
	if err := util.ValidateEnum(r.Type, "personal", "credit_card", "loan", "other"); err != nil {
		return nil, "Type must be personal, credit_card, loan, or other"
	}
	if err := util.ValidateAmount(r.TotalAmount); err != nil {
		return nil, "TotalAmount must be greater than 0"
	}
	if r.PaidAmount < 0 || r.InterestRate < 0 {
		return nil, "Amounts must not be negative"
	}
	due, err := util.ParseDate(r.DueDate)
	if err != nil {
		return nil, "DueDate must be in YYYY-MM-DD format"
	}
	return &due, ""
}

func (r *debtReq) reminder() bool {
	if r.Reminder == nil {
		return true
	}
	return *r.Reminder
}

type debtResp struct {
	models.Debt
	metrics.DebtState
}

func toDebtResp(d models.Debt) debtResp {
	return debtResp{Debt: d, DebtState: metrics.DebtMetrics(d, time.Now())}
}

func (h *DebtHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	records, err := h.Repo.List(user.ID)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	out := make([]debtResp, 0, len(records))
	for _, d := range records {
		out = append(out, toDebtResp(d))
	}
	c.JSON(http.StatusOK, out)
}

func (h *DebtHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req debtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	due, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record := models.Debt{
		UserID:       user.ID,
		Name:         req.Name,
		Type:         req.Type,
		TotalAmount:  req.TotalAmount,
		PaidAmount:   req.PaidAmount,
		DueDate:      due,
		InterestRate: req.InterestRate,
		Reminder:     req.reminder(),
		Description:  req.Description,
	}
	if err := h.Repo.Create(&record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *DebtHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Debt not found")
	if !ok {
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Debt not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, toDebtResp(*record))
}

func (h *DebtHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Debt not found")
	if !ok {
		return
	}

	var req debtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	due, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Debt not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	record.Name = req.Name
	record.Type = req.Type
	record.TotalAmount = req.TotalAmount
	record.PaidAmount = req.PaidAmount
	record.DueDate = due
	record.InterestRate = req.InterestRate
	record.Reminder = req.reminder()
	record.Description = req.Description

	if err := h.Repo.Save(record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDebtResp(*record))
}

func (h *DebtHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Debt not found")
	if !ok {
		return
	}

	if err := h.Repo.Delete(user.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Debt not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	util.Message(c, "Debt deleted successfully")
}

// Pay records a debt payment. A settled debt rejects further payments.
// Writes are last-write-wins, matching the rest of the write path.
func (h *DebtHandler) Pay(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Debt not found")
	if !ok {
		return
	}

	var req amountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, "Amount must be greater than 0")
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Debt not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	if metrics.DebtMetrics(*record, time.Now()).Completed {
		util.Error(c, http.StatusBadRequest, "Debt already paid off")
		return
	}

	record.PaidAmount += req.Amount
	if err := h.Repo.Save(record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDebtResp(*record))
}
