package entity

import "time"

// Supplier representa un proveedor del almacén.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
