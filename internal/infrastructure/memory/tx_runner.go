package memory

import (
	"context"

	"github.com/EduardoLubo/materiales-api/internal/application/ledger"
	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el store en memoria: serializa los commits con
// el mutex del store y ante error restaura el snapshot, emulando el rollback
// de PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

// Run ejecuta fn con repos atados al store; todo o nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	unitRepo repository.SerializedUnitRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.takeSnapshot()
	err := fn(
		NewMovementRepository(r.store),
		NewStockRepository(r.store),
		NewSerializedUnitRepository(r.store),
		NewMaterialRepository(r.store),
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
