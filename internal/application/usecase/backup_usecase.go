package usecase

import (
	"time"

	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// BackupUseCase exporta y restaura el snapshot completo de datos. La
// restauración es validada, no mezclada: o el snapshot trae las cinco
// secciones con invariantes válidos y sustituye todo, o no se toca nada.
type BackupUseCase struct {
	repo    repository.SnapshotRepository
	auditor Auditor
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(repo repository.SnapshotRepository, auditor Auditor) *BackupUseCase {
	return &BackupUseCase{repo: repo, auditor: auditor}
}

// Export serializa todo el estado como BackupFile.
func (uc *BackupUseCase) Export(actingUser string) (*dto.BackupFile, error) {
	snap, err := uc.repo.ExportAll()
	if err != nil {
		return nil, err
	}
	out := &dto.BackupFile{
		GeneratedAt: time.Now(),
		Items:       make([]dto.BackupItem, 0, len(snap.Items)),
		Suppliers:   make([]dto.SupplierResponse, 0, len(snap.Suppliers)),
		Users:       make([]dto.BackupUser, 0, len(snap.Users)),
		History:     make([]dto.HistoryEntryResponse, 0, len(snap.History)),
		AuditLogs:   make([]dto.AuditLogResponse, 0, len(snap.AuditLogs)),
	}
	for _, i := range snap.Items {
		out.Items = append(out.Items, dto.BackupItem{
			ID: i.ID, Code: i.Code, Description: i.Description, Category: i.Category,
			Equipment: i.Equipment, Location: i.Location, Unit: i.Unit,
			SystemStock: i.SystemStock, InitialStock: i.InitialStock, MinStock: i.MinStock,
			Value: i.Value, SupplierID: i.SupplierID, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
		})
	}
	for _, s := range snap.Suppliers {
		out.Suppliers = append(out.Suppliers, *toSupplierResponse(s))
	}
	for _, u := range snap.Users {
		out.Users = append(out.Users, dto.BackupUser{
			ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
			Profile: u.Profile, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
		})
	}
	for _, h := range snap.History {
		out.History = append(out.History, toHistoryResponse(h))
	}
	for _, l := range snap.AuditLogs {
		out.AuditLogs = append(out.AuditLogs, dto.AuditLogResponse{
			ID: l.ID, Timestamp: l.Timestamp, User: l.User, Action: l.Action,
		})
	}
	uc.auditor.Record(actingUser, "Gerou um backup completo do sistema.")
	return out, nil
}

// Restore valida el snapshot y reemplaza todo el estado de forma atómica.
func (uc *BackupUseCase) Restore(in *dto.BackupFile, actingUser string) error {
	if in == nil || in.Items == nil || in.Suppliers == nil || in.Users == nil ||
		in.History == nil || in.AuditLogs == nil {
		return domain.ErrInvalidInput
	}
	snap := &entity.Snapshot{
		Items:     make([]*entity.StockItem, 0, len(in.Items)),
		Suppliers: make([]*entity.Supplier, 0, len(in.Suppliers)),
		Users:     make([]*entity.User, 0, len(in.Users)),
		History:   make([]entity.ItemHistory, 0, len(in.History)),
		AuditLogs: make([]*entity.AuditLog, 0, len(in.AuditLogs)),
	}
	for _, i := range in.Items {
		// Los invariantes del libro deben valer también para datos restaurados.
		if i.ID == "" || i.Code == "" || i.SystemStock < 0 || i.MinStock < 0 {
			return domain.ErrInvalidInput
		}
		snap.Items = append(snap.Items, &entity.StockItem{
			ID: i.ID, Code: i.Code, Description: i.Description, Category: i.Category,
			Equipment: i.Equipment, Location: i.Location, Unit: i.Unit,
			SystemStock: i.SystemStock, InitialStock: i.InitialStock, MinStock: i.MinStock,
			Value: i.Value, SupplierID: i.SupplierID, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
		})
	}
	for _, s := range in.Suppliers {
		snap.Suppliers = append(snap.Suppliers, &entity.Supplier{
			ID: s.ID, Name: s.Name, Contact: s.Contact, Email: s.Email,
			Phone: s.Phone, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
		})
	}
	for _, u := range in.Users {
		if u.ID == "" || u.Email == "" {
			return domain.ErrInvalidInput
		}
		snap.Users = append(snap.Users, &entity.User{
			ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
			Profile: u.Profile, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
		})
	}
	for _, h := range in.History {
		record, err := historyFromBackup(h)
		if err != nil {
			return err
		}
		snap.History = append(snap.History, record)
	}
	for _, l := range in.AuditLogs {
		snap.AuditLogs = append(snap.AuditLogs, &entity.AuditLog{
			ID: l.ID, Timestamp: l.Timestamp, User: l.User, Action: l.Action,
		})
	}
	if err := uc.repo.ReplaceAll(snap); err != nil {
		return err
	}
	uc.auditor.Record(actingUser, "Sistema restaurado a partir de um backup.")
	return nil
}

// historyFromBackup reconstruye la variante según el tipo etiquetado.
func historyFromBackup(h dto.HistoryEntryResponse) (entity.ItemHistory, error) {
	if h.ItemID == "" || h.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rec := entity.HistoryRecord{
		ID: h.ID, ItemID: h.ItemID, Date: h.Date, Quantity: h.Quantity, User: h.User,
	}
	switch h.Type {
	case entity.HistoryTypeEntry:
		return &entity.EntryHistory{HistoryRecord: rec, Details: h.Details}, nil
	case entity.HistoryTypeExit:
		return &entity.ExitHistory{HistoryRecord: rec, Requester: h.Requester, Responsible: h.Responsible}, nil
	case entity.HistoryTypeAdjustment:
		var prev, counted int64
		if h.PreviousStock != nil {
			prev = *h.PreviousStock
		}
		if h.CountedStock != nil {
			counted = *h.CountedStock
		}
		return &entity.AdjustmentHistory{HistoryRecord: rec, PreviousStock: prev, CountedStock: counted}, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}
