// Package memory implementa los puertos de persistencia en memoria (STORAGE=memory y tests).
//
// Un semáforo serializa toda operación sobre el estado. Cada transacción trabaja sobre una copia
// y solo la publica al confirmar, así un error o un pánico dejan el estado intacto.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type sequences struct {
	warehouse, rule, bin, item, movement int64
}

type state struct {
	warehouses map[int64]*entity.Warehouse
	rules      map[int64]*entity.StorageRule
	bins       map[int64]*entity.BinLocation
	items      map[int64]*entity.InventoryItem
	movements  []*entity.InventoryMovement
	seq        sequences
}

func newState() *state {
	return &state{
		warehouses: map[int64]*entity.Warehouse{},
		rules:      map[int64]*entity.StorageRule{},
		bins:       map[int64]*entity.BinLocation{},
		items:      map[int64]*entity.InventoryItem{},
	}
}

// clone copia lo que una transacción puede mutar. Bodegas, reglas, bins y movimientos no se
// modifican una vez guardados, basta copiar los mapas; las filas del ledger se copian una a una.
func (s *state) clone() *state {
	c := &state{
		warehouses: make(map[int64]*entity.Warehouse, len(s.warehouses)),
		rules:      make(map[int64]*entity.StorageRule, len(s.rules)),
		bins:       make(map[int64]*entity.BinLocation, len(s.bins)),
		items:      make(map[int64]*entity.InventoryItem, len(s.items)),
		movements:  make([]*entity.InventoryMovement, len(s.movements)),
		seq:        s.seq,
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.rules {
		c.rules[k] = v
	}
	for k, v := range s.bins {
		c.bins[k] = v
	}
	for k, v := range s.items {
		it := *v
		c.items[k] = &it
	}
	copy(c.movements, s.movements)
	return c
}

// Store almacén en memoria. El valor cero no es usable: usar NewStore.
type Store struct {
	sem chan struct{}
	st  *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{sem: make(chan struct{}, 1), st: newState()}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return translateCtxErr(ctx.Err())
	}
}

func (s *Store) release() { <-s.sem }

// Run ejecuta fn sobre una copia del estado y la publica solo si fn termina sin error
// y el contexto sigue vigente.
func (s *Store) Run(ctx context.Context, fn func(tx inventory.TxRepositories) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	work := s.st.clone()
	acc := txAccess{st: work}
	if err := fn(inventory.TxRepositories{
		Items:      &ItemRepo{acc: acc},
		Movements:  &MovementRepo{acc: acc},
		Warehouses: &WarehouseRepo{acc: acc},
		Bins:       &BinRepo{acc: acc},
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return translateCtxErr(err)
	}
	s.st = work
	return nil
}

// Repositorios fuera de transacción: cada llamada toma el semáforo.

func (s *Store) Warehouses() *WarehouseRepo     { return &WarehouseRepo{acc: storeAccess{s: s}} }
func (s *Store) StorageRules() *StorageRuleRepo { return &StorageRuleRepo{acc: storeAccess{s: s}} }
func (s *Store) Bins() *BinRepo                 { return &BinRepo{acc: storeAccess{s: s}} }
func (s *Store) Items() *ItemRepo               { return &ItemRepo{acc: storeAccess{s: s}} }
func (s *Store) Movements() *MovementRepo       { return &MovementRepo{acc: storeAccess{s: s}} }

// access da a los repositorios el estado sobre el que operan.
type access interface {
	read(ctx context.Context, fn func(st *state) error) error
	write(ctx context.Context, fn func(st *state) error) error
}

// txAccess estado de una transacción en curso; el semáforo ya está tomado.
type txAccess struct{ st *state }

func (a txAccess) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return translateCtxErr(err)
	}
	return fn(a.st)
}

func (a txAccess) write(ctx context.Context, fn func(st *state) error) error {
	return a.read(ctx, fn)
}

// storeAccess operación suelta: se ejecuta como una transacción de una sola sentencia.
type storeAccess struct{ s *Store }

func (a storeAccess) read(ctx context.Context, fn func(st *state) error) error {
	if err := a.s.acquire(ctx); err != nil {
		return err
	}
	defer a.s.release()
	return fn(a.s.st)
}

func (a storeAccess) write(ctx context.Context, fn func(st *state) error) error {
	if err := a.s.acquire(ctx); err != nil {
		return err
	}
	defer a.s.release()
	work := a.s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	a.s.st = work
	return nil
}

func translateCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrLockTimeout, err)
	}
	return err
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
