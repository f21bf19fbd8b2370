package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-ledger/internal/application/dto"
	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

// StorageRuleUseCase reglas de almacenamiento. Son informativas: la asignación no las evalúa.
type StorageRuleUseCase struct {
	repo repository.StorageRuleRepository
}

func NewStorageRuleUseCase(repo repository.StorageRuleRepository) *StorageRuleUseCase {
	return &StorageRuleUseCase{repo: repo}
}

// Create valida nombre y rango de temperatura (min <= max cuando ambos existen).
func (uc *StorageRuleUseCase) Create(ctx context.Context, in dto.CreateStorageRuleRequest) (*dto.StorageRuleResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	rule := &entity.StorageRule{
		Name:        name,
		Description: in.Description,
		IsHazardous: in.IsHazardous,
		IsOversized: in.IsOversized,
		TempMin:     nullDecimal(in.TempMin),
		TempMax:     nullDecimal(in.TempMax),
	}
	if !rule.ValidTemperatureRange() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return toStorageRuleResponse(rule), nil
}

func (uc *StorageRuleUseCase) GetByID(ctx context.Context, id int64) (*dto.StorageRuleResponse, error) {
	rule, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrStorageRuleNotFound
	}
	return toStorageRuleResponse(rule), nil
}

func (uc *StorageRuleUseCase) List(ctx context.Context) ([]dto.StorageRuleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StorageRuleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toStorageRuleResponse(r))
	}
	return out, nil
}

// Delete con bins que usan la regla devuelve ErrConflict.
func (uc *StorageRuleUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func toStorageRuleResponse(r *entity.StorageRule) *dto.StorageRuleResponse {
	return &dto.StorageRuleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsHazardous: r.IsHazardous,
		IsOversized: r.IsOversized,
		TempMin:     decimalPtr(r.TempMin),
		TempMax:     decimalPtr(r.TempMax),
		CreatedAt:   r.CreatedAt,
	}
}
