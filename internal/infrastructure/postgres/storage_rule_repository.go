package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

var _ repository.StorageRuleRepository = (*StorageRuleRepo)(nil)

// StorageRuleRepo reglas de almacenamiento sobre PostgreSQL. Las temperaturas son NUMERIC
// y se leen como decimal.NullDecimal gracias al codec registrado en el pool.
type StorageRuleRepo struct {
	q Querier
}

func NewStorageRuleRepository(q Querier) *StorageRuleRepo {
	return &StorageRuleRepo{q: q}
}

const storageRuleColumns = `id, name, description, is_hazardous, is_oversized, temp_min, temp_max, created_at`

func scanStorageRule(row pgx.Row) (*entity.StorageRule, error) {
	var r entity.StorageRule
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.IsHazardous, &r.IsOversized, &r.TempMin, &r.TempMax, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *StorageRuleRepo) Create(ctx context.Context, rule *entity.StorageRule) error {
	query := `
		INSERT INTO storage_rules (name, description, is_hazardous, is_oversized, temp_min, temp_max)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		rule.Name, rule.Description, rule.IsHazardous, rule.IsOversized, rule.TempMin, rule.TempMax,
	).Scan(&rule.ID, &rule.CreatedAt)
	if err != nil {
		return translate("insert storage rule", err)
	}
	return nil
}

func (r *StorageRuleRepo) GetByID(ctx context.Context, id int64) (*entity.StorageRule, error) {
	rule, err := scanStorageRule(r.q.QueryRow(ctx, `SELECT `+storageRuleColumns+` FROM storage_rules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("get storage rule", err)
	}
	return rule, nil
}

func (r *StorageRuleRepo) List(ctx context.Context) ([]*entity.StorageRule, error) {
	rows, err := r.q.Query(ctx, `SELECT `+storageRuleColumns+` FROM storage_rules ORDER BY id`)
	if err != nil {
		return nil, translate("list storage rules", err)
	}
	defer rows.Close()

	var list []*entity.StorageRule
	for rows.Next() {
		rule, err := scanStorageRule(rows)
		if err != nil {
			return nil, translate("scan storage rule", err)
		}
		list = append(list, rule)
	}
	return list, translate("list storage rules", rows.Err())
}

func (r *StorageRuleRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM storage_rules WHERE id = $1`, id)
	if err != nil {
		return translate("delete storage rule", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStorageRuleNotFound
	}
	return nil
}
