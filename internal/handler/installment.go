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

// InstallmentHandler serves installment-plan CRUD plus payments.
type InstallmentHandler struct {
	Repo *store.Repository[models.Installment]
}

func NewInstallmentHandler(db *gorm.DB) *InstallmentHandler {
	return &InstallmentHandler{Repo: store.NewRepository[models.Installment](db)}
}

type installmentReq struct {
	Name               string  `json:"name"`
	TotalAmount        float64 `json:"totalAmount"`
	PaidAmount         float64 `json:"paidAmount"`
	Installments       int     `json:"installments"`
	CurrentInstallment int     `json:"currentInstallment"`
	DueDate            string  `json:"dueDate"`
	Reminder           *bool   `json:"reminder"`
}

func (r *installmentReq) validate() (*time.Time, string) {
	r.Name = strings.TrimSpace(r.Name)

	if r.Name == "" || r.TotalAmount == 0 || r.Installments == 0 || r.DueDate == "" {
		return nil, "Name, totalAmount, installments, and dueDate are required"
	}
	if err := util.ValidateAmount(r.TotalAmount); err != nil {
		return nil, "TotalAmount must be greater than 0"
	}
	if r.Installments < 1 {
		return nil, "Installments must be at least 1"
	}
	if r.PaidAmount < 0 || r.CurrentInstallment < 0 {
		return nil, "Amounts must not be negative"
	}
	due, err := util.ParseDate(r.DueDate)
	if err != nil {
		return nil, "DueDate must be in YYYY-MM-DD format"
	}
	return &due, ""
}

func (r *installmentReq) reminder() bool {
	if r.Reminder == nil {
		return true
	}
	return *r.Reminder
}

type installmentResp struct {
	models.Installment
	metrics.InstallmentState
}

func toInstallmentResp(i models.Installment) installmentResp {
	return installmentResp{Installment: i, InstallmentState: metrics.InstallmentMetrics(i, time.Now())}
}

func (h *InstallmentHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	records, err := h.Repo.List(user.ID)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	out := make([]installmentResp, 0, len(records))
	for _, i := range records {
		out = append(out, toInstallmentResp(i))
	}
	c.JSON(http.StatusOK, out)
}

func (h *InstallmentHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req installmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	due, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record := models.Installment{
		UserID:             user.ID,
		Name:               req.Name,
		TotalAmount:        req.TotalAmount,
		PaidAmount:         req.PaidAmount,
		Installments:       req.Installments,
		CurrentInstallment: req.CurrentInstallment,
		DueDate:            due,
		Reminder:           req.reminder(),
	}
	if err := h.Repo.Create(&record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *InstallmentHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Installment not found")
	if !ok {
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Installment not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, toInstallmentResp(*record))
}

func (h *InstallmentHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Installment not found")
	if !ok {
		return
	}

	var req installmentReq
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
			util.Error(c, http.StatusNotFound, "Installment not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	record.Name = req.Name
	record.TotalAmount = req.TotalAmount
	record.PaidAmount = req.PaidAmount
	record.Installments = req.Installments
	record.CurrentInstallment = req.CurrentInstallment
	record.DueDate = due
	record.Reminder = req.reminder()

	if err := h.Repo.Save(record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInstallmentResp(*record))
}

func (h *InstallmentHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Installment not found")
	if !ok {
		return
	}

	if err := h.Repo.Delete(user.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Installment not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	util.Message(c, "Installment deleted successfully")
}

// Pay records one installment payment: the paid amount grows and the
// installment index advances, capped at the plan's count. Writes are
// last-write-wins, matching the rest of the write path.
func (h *InstallmentHandler) Pay(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Installment not found")
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
			util.Error(c, http.StatusNotFound, "Installment not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	if metrics.InstallmentMetrics(*record, time.Now()).Completed {
		util.Error(c, http.StatusBadRequest, "Installment already paid off")
		return
	}

	record.PaidAmount += req.Amount
	record.CurrentInstallment = min(record.CurrentInstallment+1, record.Installments)

	if err := h.Repo.Save(record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInstallmentResp(*record))
}
