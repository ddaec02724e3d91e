package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// Auditor registra acciones de auditoría (best-effort).
type Auditor interface {
	Record(actingUser, action string)
}

// ItemUseCase casos de uso CRUD para ítems del almacén. SystemStock se
// siembra desde InitialStock al crear y después solo cambia vía el motor de
// movimientos o la conciliación, nunca por Update.
type ItemUseCase struct {
	repo    repository.StockItemRepository
	auditor Auditor
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.StockItemRepository, auditor Auditor) *ItemUseCase {
	return &ItemUseCase{repo: repo, auditor: auditor}
}

func (uc *ItemUseCase) validate(in dto.CreateItemRequest) error {
	if !entity.ValidCode(in.Code) {
		return domain.ErrInvalidInput
	}
	if in.Description == "" || in.Location == "" || !entity.ValidUnit(in.Unit) {
		return domain.ErrInvalidInput
	}
	if in.InitialStock < 0 || in.MinStock < 0 || in.Value.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create crea un ítem con SystemStock = InitialStock. Devuelve
// ErrDuplicateCode si el código ya existe (case-insensitive).
func (uc *ItemUseCase) Create(in dto.CreateItemRequest, actingUser string) (*dto.ItemResponse, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateCode
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Description:  in.Description,
		Category:     in.Category,
		Equipment:    in.Equipment,
		Location:     in.Location,
		Unit:         in.Unit,
		SystemStock:  in.InitialStock,
		InitialStock: in.InitialStock,
		MinStock:     in.MinStock,
		Value:        in.Value,
		SupplierID:   in.SupplierID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	uc.auditor.Record(actingUser, fmt.Sprintf("Criou o item %s (%s).", item.Code, item.Description))
	return toItemResponse(item), nil
}

// BulkCreate crea un lote de ítems ya parseados. Las filas inválidas se
// reportan con su índice; las válidas se crean igualmente.
func (uc *ItemUseCase) BulkCreate(in dto.BulkCreateItemsRequest, actingUser string) (*dto.BulkCreateItemsResponse, error) {
	out := &dto.BulkCreateItemsResponse{}
	for i, row := range in.Items {
		created, err := uc.Create(row, actingUser)
		if err != nil {
			code := "INVALID"
			if err == domain.ErrDuplicateCode {
				code = "DUPLICATE_CODE"
			}
			out.Errors = append(out.Errors, dto.BulkRowError{Row: i + 1, Code: code, Message: err.Error()})
			continue
		}
		out.Created = append(out.Created, *created)
	}
	if len(out.Created) > 0 {
		uc.auditor.Record(actingUser, fmt.Sprintf("Importou %d item(ns) em lote.", len(out.Created)))
	}
	return out, nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza un ítem. No toca SystemStock ni InitialStock. Si cambia
// el código, revalida unicidad case-insensitive.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest, actingUser string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Code != nil && *in.Code != item.Code {
		if !entity.ValidCode(*in.Code) {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.repo.GetByCode(*in.Code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != item.ID {
			return nil, domain.ErrDuplicateCode
		}
		item.Code = *in.Code
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Equipment != nil {
		item.Equipment = *in.Equipment
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		item.Unit = *in.Unit
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	if in.Value != nil {
		if in.Value.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Value = *in.Value
	}
	if in.SupplierID != nil {
		item.SupplierID = in.SupplierID
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	uc.auditor.Record(actingUser, fmt.Sprintf("Atualizou o item %s.", item.Code))
	return toItemResponse(item), nil
}

// Delete elimina el ítem. Su historial se conserva para auditoría, claveado
// por item_id, aunque el ítem ya no sea resoluble.
func (uc *ItemUseCase) Delete(id string, actingUser string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(actingUser, fmt.Sprintf("Excluiu o item %s.", item.Code))
	return nil
}

// List lista ítems con búsqueda libre y filtro de stock bajo.
func (uc *ItemUseCase) List(search string, onlyBelowMin bool, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(search, onlyBelowMin, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toItemResponse(i *entity.StockItem) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          i.ID,
		Code:        i.Code,
		Description: i.Description,
		Category:    i.Category,
		Equipment:   i.Equipment,
		Location:    i.Location,
		Unit:        i.Unit,
		SystemStock: i.SystemStock,
		MinStock:    i.MinStock,
		Value:       i.Value,
		SupplierID:  i.SupplierID,
		BelowMin:    i.BelowMinimum(),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
