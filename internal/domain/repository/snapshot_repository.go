package repository

import "github.com/alumasa/almoxarifado-api/internal/domain/entity"

// SnapshotRepository define el puerto de backup/restore del conjunto
// completo de datos.
type SnapshotRepository interface {
	ExportAll() (*entity.Snapshot, error)
	// ReplaceAll sustituye todo el estado por el snapshot, de forma atómica:
	// o se restaura completo o no se toca nada.
	ReplaceAll(snapshot *entity.Snapshot) error
}
