package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStorageRuleRequest entrada para crear una regla de almacenamiento.
// Las temperaturas se aceptan como número o string ("2.5").
type CreateStorageRuleRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	IsHazardous bool             `json:"is_hazardous"`
	IsOversized bool             `json:"is_oversized"`
	TempMin     *decimal.Decimal `json:"temp_min,omitempty"`
	TempMax     *decimal.Decimal `json:"temp_max,omitempty"`
}

// StorageRuleResponse salida de una regla.
type StorageRuleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	IsHazardous bool             `json:"is_hazardous"`
	IsOversized bool             `json:"is_oversized"`
	TempMin     *decimal.Decimal `json:"temp_min,omitempty"`
	TempMax     *decimal.Decimal `json:"temp_max,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
