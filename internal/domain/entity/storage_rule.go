package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorageRule restricción de almacenamiento (peligroso, sobredimensionado, rango de temperatura).
// Es informativa: el motor de asignación no la aplica.
type StorageRule struct {
	ID          int64
	Name        string
	Description *string
	IsHazardous bool
	IsOversized bool
	TempMin     decimal.NullDecimal
	TempMax     decimal.NullDecimal
	CreatedAt   time.Time
}

// ValidTemperatureRange es falso solo si ambos extremos existen y el mínimo supera al máximo.
func (r *StorageRule) ValidTemperatureRange() bool {
	if !r.TempMin.Valid || !r.TempMax.Valid {
		return true
	}
	return r.TempMin.Decimal.LessThanOrEqual(r.TempMax.Decimal)
}
