package entity

import "time"

// Location representa una ubicación de almacenamiento dentro de un almacén
// (estantería, muelle, zona). El stock siempre se registra a nivel de ubicación.
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	ShortCode   string // único por almacén
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
