package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

// ExportHandler produces CSV and XLSX snapshots of the product and client
// catalogs.
type ExportHandler struct {
	Products repository.ProductRepository
	Clients  repository.ClientRepository
}

func (h ExportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/export/products", h.products)
	r.Get("/export/clients", h.clients)
}

func (h ExportHandler) products(w http.ResponseWriter, r *http.Request) {
	items, err := h.Products.List(r.Context(), listFilter(r), "")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	serveExport(w, r, "products", func() ([]byte, error) {
		return exportProductsCSV(items)
	}, func() ([]byte, error) {
		return exportProductsXLSX(items)
	})
}

func (h ExportHandler) clients(w http.ResponseWriter, r *http.Request) {
	items, err := h.Clients.List(r.Context(), listFilter(r), "")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	serveExport(w, r, "clients", func() ([]byte, error) {
		return exportClientsCSV(items)
	}, func() ([]byte, error) {
		return exportClientsXLSX(items)
	})
}

func serveExport(w http.ResponseWriter, r *http.Request, name string, asCSV, asXLSX func() ([]byte, error)) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	suffix := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		data, err := asCSV()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.csv\"", name, suffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := asXLSX()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"", name, suffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func exportProductsCSV(items []domain.Product) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "name", "sku", "price", "cost", "stock", "min_stock", "unit", "active"})
	for _, p := range items {
		_ = w.Write([]string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			derefString(p.SKU),
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.FormatFloat(p.Cost, 'f', 2, 64),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.MinStock),
			p.Unit,
			strconv.FormatBool(p.Active),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportProductsXLSX(items []domain.Product) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Products"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Name", "SKU", "Price", "Cost", "Stock", "Min Stock", "Unit", "Active"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, p := range items {
		row := r + 2
		values := []any{p.ID, p.Name, derefString(p.SKU), p.Price, p.Cost, p.Stock, p.MinStock, p.Unit, p.Active}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 32)
	_ = f.SetColWidth(sheet, "C", "C", 16)
	_ = f.SetColWidth(sheet, "D", "G", 12)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "I1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportClientsCSV(items []domain.Client) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "first_name", "last_name", "national_id", "phone", "email", "tier", "active"})
	for _, c := range items {
		_ = w.Write([]string{
			strconv.FormatInt(c.ID, 10),
			c.FirstName,
			c.LastName,
			derefString(c.NationalID),
			c.Phone,
			c.Email,
			c.Tier,
			strconv.FormatBool(c.Active),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportClientsXLSX(items []domain.Client) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Clients"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "First Name", "Last Name", "National ID", "Phone", "Email", "Tier", "Active"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, c := range items {
		row := r + 2
		values := []any{c.ID, c.FirstName, c.LastName, derefString(c.NationalID), c.Phone, c.Email, c.Tier, c.Active}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "C", 20)
	_ = f.SetColWidth(sheet, "D", "F", 18)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "H1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
