package entity

import "time"

// Warehouse representa un almacén físico con una o más ubicaciones.
type Warehouse struct {
	ID        string
	Name      string
	ShortCode string // único, usado en referencias y vistas compactas
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
