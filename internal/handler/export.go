package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/models"
	"github.com/Jepersonsam/my-finance-app/internal/store"
	"github.com/Jepersonsam/my-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler serves transaction downloads as CSV or XLSX.
type ExportHandler struct {
	TxRepo *store.Repository[models.Transaction]
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{TxRepo: store.NewRepository[models.Transaction](db)}
}

var exportHeader = []string{"Tanggal", "Keterangan", "Kategori", "Tipe", "Jumlah"}

func exportRow(t models.Transaction) []string {
	tipe := "Pengeluaran"
	if t.Type == "income" {
		tipe = "Pemasukan"
	}
	return []string{
		t.Date.Format("02/01/2006"),
		t.Description,
		t.Category,
		tipe,
		strconv.FormatFloat(t.Amount, 'f', -1, 64),
	}
}

func (h *ExportHandler) transactions(c *gin.Context) ([]models.Transaction, bool) {
	user, ok := requireUser(c)
	if !ok {
		return nil, false
	}

	txs, err := h.TxRepo.List(user.ID, func(q *gorm.DB) *gorm.DB {
		return q.Order("date DESC")
	})
	if err != nil {
		util.ServerError(c, err)
		return nil, false
	}
	return txs, true
}

// CSV streams the caller's transactions as a CSV attachment.
func (h *ExportHandler) CSV(c *gin.Context) {
	txs, ok := h.transactions(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel detects the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for _, t := range txs {
		writer.Write(exportRow(t))
	}
}

// XLSX sends the caller's transactions as an Excel workbook.
func (h *ExportHandler) XLSX(c *gin.Context) {
	txs, ok := h.transactions(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	const sheet = "Transaksi"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, t := range txs {
		values := exportRow(t)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if col == len(values)-1 {
				f.SetCellValue(sheet, cell, t.Amount)
			} else {
				f.SetCellValue(sheet, cell, v)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		util.ServerError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
