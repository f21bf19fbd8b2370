package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	WorkingHours *string `json:"working_hours,omitempty"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	WorkingHours *string   `json:"working_hours,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
