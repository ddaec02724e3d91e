package usecase

import (
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// PurchaseOrderGenerator genera el PDF del pedido de compra a partir del
// reporte de estoque baixo.
type PurchaseOrderGenerator interface {
	Generate(generatedAt time.Time, lines []dto.PurchaseOrderLine) ([]byte, error)
}

// listAll: tamaño de página para recorrer el repositorio completo en reportes.
const listAll = 10000

// ReportUseCase reportes operacionales: estoque baixo, movimientos por
// período y valor por local, más el resumen del panel.
type ReportUseCase struct {
	itemRepo     repository.StockItemRepository
	historyRepo  repository.ItemHistoryRepository
	supplierRepo repository.SupplierRepository
	pdfGen       PurchaseOrderGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	itemRepo repository.StockItemRepository,
	historyRepo repository.ItemHistoryRepository,
	supplierRepo repository.SupplierRepository,
	pdfGen PurchaseOrderGenerator,
) *ReportUseCase {
	return &ReportUseCase{itemRepo: itemRepo, historyRepo: historyRepo, supplierRepo: supplierRepo, pdfGen: pdfGen}
}

func (uc *ReportUseCase) supplierName(id *string) string {
	if id == nil {
		return ""
	}
	s, err := uc.supplierRepo.GetByID(*id)
	if err != nil || s == nil {
		return ""
	}
	return s.Name
}

// LowStock devuelve los ítems con system_stock <= min_stock.
func (uc *ReportUseCase) LowStock() (*dto.LowStockReport, error) {
	items, err := uc.itemRepo.List("", true, listAll, 0)
	if err != nil {
		return nil, err
	}
	report := &dto.LowStockReport{GeneratedAt: time.Now()}
	for _, it := range items {
		report.Rows = append(report.Rows, dto.LowStockRow{
			ItemID:      it.ID,
			Code:        it.Code,
			Description: it.Description,
			SystemStock: it.SystemStock,
			MinStock:    it.MinStock,
			Supplier:    uc.supplierName(it.SupplierID),
		})
	}
	return report, nil
}

// LowStockCSV exporta el reporte de estoque baixo como CSV (separador ';').
func (uc *ReportUseCase) LowStockCSV() (string, error) {
	report, err := uc.LowStock()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'
	_ = w.Write([]string{"CÓDIGO", "DESCRIÇÃO", "ESTOQUE ATUAL", "ESTOQUE MÍNIMO", "FORNECEDOR"})
	for _, r := range report.Rows {
		_ = w.Write([]string{
			r.Code, r.Description,
			strconv.FormatInt(r.SystemStock, 10),
			strconv.FormatInt(r.MinStock, 10),
			r.Supplier,
		})
	}
	w.Flush()
	return sb.String(), w.Error()
}

// PurchaseOrderPDF genera el PDF del pedido de compra con las líneas
// seleccionadas (solo las que tienen nota de pedido).
func (uc *ReportUseCase) PurchaseOrderPDF(in dto.PurchaseOrderRequest) ([]byte, error) {
	lines := make([]dto.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if strings.TrimSpace(l.OrderNote) == "" {
			continue
		}
		lines = append(lines, l)
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.pdfGen.Generate(time.Now(), lines)
}

// MovementsByPeriod totaliza entradas y salidas en [from, to] y calcula los
// ítems más consumidos por suma de salidas. Los ajustes de inventario se
// listan pero no cuentan en los totales.
func (uc *ReportUseCase) MovementsByPeriod(from, to *time.Time) (*dto.MovementsReport, error) {
	records, err := uc.historyRepo.ListByPeriod(from, to)
	if err != nil {
		return nil, err
	}
	report := &dto.MovementsReport{From: from, To: to}
	exitTotals := map[string]int64{}
	for _, h := range records {
		rec := h.Record()
		row := dto.MovementRow{
			ItemID:   rec.ItemID,
			Type:     h.Type(),
			Quantity: rec.Quantity,
			Date:     rec.Date,
			User:     rec.User,
		}
		switch v := h.(type) {
		case *entity.EntryHistory:
			report.TotalEntries += rec.Quantity
			row.Description = v.Details
		case *entity.ExitHistory:
			report.TotalExits += rec.Quantity
			exitTotals[rec.ItemID] += rec.Quantity
			row.Description = "Solicitante: " + v.Requester
		}
		report.Movements = append(report.Movements, row)
	}
	for itemID, qty := range exitTotals {
		code := itemID
		if it, err := uc.itemRepo.GetByID(itemID); err == nil && it != nil {
			code = it.Code
		}
		report.TopConsumed = append(report.TopConsumed, dto.TopConsumedRow{
			ItemID: itemID, Code: code, Quantity: qty,
		})
	}
	sort.Slice(report.TopConsumed, func(i, j int) bool {
		if report.TopConsumed[i].Quantity != report.TopConsumed[j].Quantity {
			return report.TopConsumed[i].Quantity > report.TopConsumed[j].Quantity
		}
		return report.TopConsumed[i].Code < report.TopConsumed[j].Code
	})
	if len(report.TopConsumed) > 10 {
		report.TopConsumed = report.TopConsumed[:10]
	}
	return report, nil
}

// ValueByLocation agrupa system_stock * value por localización.
func (uc *ReportUseCase) ValueByLocation() (*dto.LocationValueReport, error) {
	items, err := uc.itemRepo.List("", false, listAll, 0)
	if err != nil {
		return nil, err
	}
	type acc struct {
		items int
		value decimal.Decimal
	}
	byLocation := map[string]*acc{}
	for _, it := range items {
		a := byLocation[it.Location]
		if a == nil {
			a = &acc{value: decimal.Zero}
			byLocation[it.Location] = a
		}
		a.items++
		a.value = a.value.Add(it.TotalValue())
	}
	report := &dto.LocationValueReport{Total: decimal.Zero}
	for loc, a := range byLocation {
		report.Rows = append(report.Rows, dto.LocationValueRow{
			Location: loc, Items: a.items, Value: a.value,
		})
		report.Total = report.Total.Add(a.value)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].Location < report.Rows[j].Location
	})
	return report, nil
}

// ValueByLocationCSV exporta el reporte de valor por local como CSV.
func (uc *ReportUseCase) ValueByLocationCSV() (string, error) {
	report, err := uc.ValueByLocation()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'
	_ = w.Write([]string{"LOCAL", "ITENS", "VALOR TOTAL"})
	for _, r := range report.Rows {
		_ = w.Write([]string{r.Location, strconv.Itoa(r.Items), r.Value.StringFixed(2)})
	}
	_ = w.Write([]string{"TOTAL", "", report.Total.StringFixed(2)})
	w.Flush()
	return sb.String(), w.Error()
}

// Dashboard calcula el resumen del panel: totales y distribución por categoría.
func (uc *ReportUseCase) Dashboard() (*dto.DashboardSummary, error) {
	items, err := uc.itemRepo.List("", false, listAll, 0)
	if err != nil {
		return nil, err
	}
	summary := &dto.DashboardSummary{TotalValue: decimal.Zero}
	type acc struct {
		items int
		value decimal.Decimal
	}
	byCategory := map[string]*acc{}
	for _, it := range items {
		summary.TotalItems++
		summary.TotalValue = summary.TotalValue.Add(it.TotalValue())
		if it.BelowMinimum() {
			summary.ItemsBelowMin++
		}
		a := byCategory[it.Category]
		if a == nil {
			a = &acc{value: decimal.Zero}
			byCategory[it.Category] = a
		}
		a.items++
		a.value = a.value.Add(it.TotalValue())
	}
	for cat, a := range byCategory {
		summary.Categories = append(summary.Categories, dto.CategoryRow{
			Category: cat, Items: a.items, Value: a.value,
		})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})
	return summary, nil
}
