package entity

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para un ítem (valores tal como los usa el almacén).
var ValidUnits = []string{
	"Unidade", "Quilograma", "Metro", "Par", "Bobina", "Caixa", "Peças",
	"Litro", "Pacote", "Rolo", "Saco", "Vara", "Lata", "Carretel",
}

// codePattern: alfanumérico y guiones, sin espacios.
var codePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// StockItem representa un ítem del almacén. SystemStock es la cantidad
// canónica y solo puede mutar vía el motor de movimientos o la conciliación
// de inventario, nunca directamente desde la capa de presentación.
type StockItem struct {
	ID           string
	Code         string // único, case-insensitive
	Description  string
	Category     string
	Equipment    string
	Location     string
	Unit         string
	SystemStock  int64 // cantidad actual, siempre >= 0
	InitialStock int64 // solo se usa al crear: siembra SystemStock
	MinStock     int64 // umbral de reposición
	Value        decimal.Decimal // valor monetario unitario
	SupplierID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidCode indica si el código cumple el formato permitido.
func ValidCode(code string) bool {
	return code != "" && codePattern.MatchString(code)
}

// ValidUnit indica si la unidad está en el catálogo.
func ValidUnit(unit string) bool {
	for _, u := range ValidUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// BelowMinimum indica si el ítem está en o por debajo del stock mínimo.
func (i *StockItem) BelowMinimum() bool {
	return i.SystemStock <= i.MinStock
}

// TotalValue devuelve SystemStock * Value.
func (i *StockItem) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(i.SystemStock).Mul(i.Value)
}
