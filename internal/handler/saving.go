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

// SavingHandler serves savings-goal CRUD plus the deposit action.
type SavingHandler struct {
	Repo *store.Repository[models.Saving]
}

func NewSavingHandler(db *gorm.DB) *SavingHandler {
	return &SavingHandler{Repo: store.NewRepository[models.Saving](db)}
}

type savingReq struct {
	Name           string  `json:"name"`
	TargetAmount   float64 `json:"targetAmount"`
	CurrentAmount  float64 `json:"currentAmount"`
	TargetDate     string  `json:"targetDate"`
	AutoSave       bool    `json:"autoSave"`
	AutoSaveAmount float64 `json:"autoSaveAmount"`
}

func (r *savingReq) validate() (*time.Time, string) {
	r.Name = strings.TrimSpace(r.Name)

	if r.Name == "" || r.TargetAmount == 0 {
		return nil, "Name and targetAmount are required"
	}
	if err := util.ValidateAmount(r.TargetAmount); err != nil {
		return nil, "TargetAmount must be greater than 0"
	}
	if r.CurrentAmount < 0 || r.AutoSaveAmount < 0 {
		return nil, "Amounts must not be negative"
	}

	var targetDate *time.Time
	if r.TargetDate != "" {
		d, err := util.ParseDate(r.TargetDate)
		if err != nil {
			return nil, "TargetDate must be in YYYY-MM-DD format"
		}
		targetDate = &d
	}
	return targetDate, ""
}

type savingResp struct {
	models.Saving
	metrics.SavingsProgress
}

func toSavingResp(s models.Saving) savingResp {
	return savingResp{Saving: s, SavingsProgress: metrics.Progress(s)}
}

func (h *SavingHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	records, err := h.Repo.List(user.ID)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	out := make([]savingResp, 0, len(records))
	for _, s := range records {
		out = append(out, toSavingResp(s))
	}
	c.JSON(http.StatusOK, out)
}

func (h *SavingHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req savingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	targetDate, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record := models.Saving{
		UserID:         user.ID,
		Name:           req.Name,
		TargetAmount:   req.TargetAmount,
		CurrentAmount:  req.CurrentAmount,
		TargetDate:     targetDate,
		AutoSave:       req.AutoSave,
		AutoSaveAmount: req.AutoSaveAmount,
	}
	if err := h.Repo.Create(&record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *SavingHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Saving not found")
	if !ok {
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Saving not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, toSavingResp(*record))
}

func (h *SavingHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Saving not found")
	if !ok {
		return
	}

	var req savingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	targetDate, msg := req.validate()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, msg)
		return
	}

	record, err := h.Repo.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Saving not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	record.Name = req.Name
	record.TargetAmount = req.TargetAmount
	record.CurrentAmount = req.CurrentAmount
	record.TargetDate = targetDate
	record.AutoSave = req.AutoSave
	record.AutoSaveAmount = req.AutoSaveAmount

	if err := h.Repo.Save(record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSavingResp(*record))
}

func (h *SavingHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Saving not found")
	if !ok {
		return
	}

	if err := h.Repo.Delete(user.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Saving not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}
	util.Message(c, "Saving deleted successfully")
}

type amountReq struct {
	Amount float64 `json:"amount"`
}

// Deposit adds a positive amount to the goal's current balance. A
// completed goal rejects further deposits. Concurrent deposits are
// last-write-wins, matching the rest of the write path.
func (h *SavingHandler) Deposit(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Saving not found")
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
			util.Error(c, http.StatusNotFound, "Saving not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	if metrics.Progress(*record).Completed {
		util.Error(c, http.StatusBadRequest, "Saving goal already completed")
		return
	}

	record.CurrentAmount += req.Amount
	if err := h.Repo.Save(record); err != nil {
		util.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSavingResp(*record))
}
