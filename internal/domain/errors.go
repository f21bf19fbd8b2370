package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrWarehouseNotFound   = errors.New("bodega no encontrada")
	ErrBinNotFound         = errors.New("ubicación (bin) no encontrada")
	ErrStorageRuleNotFound = errors.New("regla de almacenamiento no encontrada")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrAllocationRace      = errors.New("el stock cambió durante la asignación, reintente")
	ErrLockTimeout         = errors.New("tiempo de espera agotado al bloquear inventario")
)

// AllocationRaceError indica que, con las filas ya bloqueadas, un producto no alcanzó a cubrirse
// aunque la verificación previa lo reportó disponible. La transacción completa se revierte.
type AllocationRaceError struct {
	ProductID int64
	Requested int64
	Allocated int64
}

func (e *AllocationRaceError) Error() string {
	return fmt.Sprintf("producto %d: solicitado %d, asignado %d: %s",
		e.ProductID, e.Requested, e.Allocated, ErrAllocationRace.Error())
}

// Unwrap permite errors.Is(err, ErrAllocationRace).
func (e *AllocationRaceError) Unwrap() error { return ErrAllocationRace }

// IsNotFound agrupa los errores de referencia inexistente (bodega, bin, regla o genérico).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrWarehouseNotFound) ||
		errors.Is(err, ErrBinNotFound) ||
		errors.Is(err, ErrStorageRuleNotFound)
}
