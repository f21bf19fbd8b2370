package repository

import (
	"context"

	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

// StorageRuleRepository puerto de persistencia para reglas de almacenamiento.
type StorageRuleRepository interface {
	Create(ctx context.Context, rule *entity.StorageRule) error
	GetByID(ctx context.Context, id int64) (*entity.StorageRule, error)
	List(ctx context.Context) ([]*entity.StorageRule, error)
	Delete(ctx context.Context, id int64) error
}
