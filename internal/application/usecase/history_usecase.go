package usecase

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// HistoryUseCase consultas de solo lectura sobre el historial por ítem.
type HistoryUseCase struct {
	repo repository.ItemHistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.ItemHistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// ListByItem devuelve el historial del ítem, del más reciente al más antiguo.
func (uc *HistoryUseCase) ListByItem(itemID string) (*dto.HistoryListResponse, error) {
	records, err := uc.repo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistoryEntryResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toHistoryResponse(r))
	}
	return &dto.HistoryListResponse{ItemID: itemID, Items: items}, nil
}

// ExportCSV exporta el historial del ítem como CSV (separador ';' como los
// reportes del almacén).
func (uc *HistoryUseCase) ExportCSV(itemID string) (string, error) {
	records, err := uc.repo.ListByItem(itemID)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'
	_ = w.Write([]string{"DATA", "TIPO", "QUANTIDADE", "USUÁRIO", "DETALHES"})
	for _, r := range records {
		resp := toHistoryResponse(r)
		detail := resp.Details
		switch resp.Type {
		case entity.HistoryTypeExit:
			detail = fmt.Sprintf("Solicitante: %s. Responsável: %s", resp.Requester, resp.Responsible)
		case entity.HistoryTypeAdjustment:
			detail = fmt.Sprintf("Ajuste de %d para %d", *resp.PreviousStock, *resp.CountedStock)
		}
		_ = w.Write([]string{
			resp.Date.Format("02/01/2006 15:04"),
			resp.Type,
			strconv.FormatInt(resp.Quantity, 10),
			resp.User,
			detail,
		})
	}
	w.Flush()
	return sb.String(), w.Error()
}

// toHistoryResponse aplana la variante al DTO; el tipo decide qué campos van.
func toHistoryResponse(h entity.ItemHistory) dto.HistoryEntryResponse {
	rec := h.Record()
	resp := dto.HistoryEntryResponse{
		ID:       rec.ID,
		ItemID:   rec.ItemID,
		Type:     h.Type(),
		Date:     rec.Date,
		Quantity: rec.Quantity,
		User:     rec.User,
	}
	switch v := h.(type) {
	case *entity.EntryHistory:
		resp.Details = v.Details
	case *entity.ExitHistory:
		resp.Requester = v.Requester
		resp.Responsible = v.Responsible
	case *entity.AdjustmentHistory:
		prev, counted := v.PreviousStock, v.CountedStock
		resp.PreviousStock = &prev
		resp.CountedStock = &counted
	}
	return resp
}
