package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock a granel materializado sobre PostgreSQL (usable con pool o tx).
// En la tabla crew_id 0 significa "sin cuadrilla" para que la clave primaria
// sea simple; el dominio usa puntero nil.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func crewColumn(key entity.StockKey) int64 {
	if key.CrewID == nil {
		return 0
	}
	return *key.CrewID
}

// Get obtiene el stock de la tupla; fila inexistente equivale a cantidad cero.
func (r *StockRepo) Get(key entity.StockKey) (*entity.Stock, error) {
	return r.get(key, false)
}

// GetForUpdate obtiene el stock bloqueando la fila (SELECT FOR UPDATE).
// Tuplas disjuntas bloquean filas disjuntas: commits no relacionados avanzan
// en paralelo.
func (r *StockRepo) GetForUpdate(key entity.StockKey) (*entity.Stock, error) {
	return r.get(key, true)
}

func (r *StockRepo) get(key entity.StockKey, forUpdate bool) (*entity.Stock, error) {
	query := `
		SELECT quantity, updated_at
		FROM stock
		WHERE material_id = $1 AND location_kind = $2 AND location_id = $3
		  AND crew_id = $4 AND client_id = $5`
	if forUpdate {
		query += " FOR UPDATE"
	}
	s := entity.Stock{Key: key, Quantity: decimal.Zero}
	err := r.q.QueryRow(context.Background(), query,
		key.MaterialID, key.LocationKind, key.LocationID, crewColumn(key), key.ClientID,
	).Scan(&s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{Key: key, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o pisa la cantidad de la tupla.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (material_id, location_kind, location_id, crew_id, client_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (material_id, location_kind, location_id, crew_id, client_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	key := stock.Key
	_, err := r.q.Exec(context.Background(), query,
		key.MaterialID, key.LocationKind, key.LocationID, crewColumn(key), key.ClientID,
		stock.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// FoldQuantity deriva la cantidad de la tupla plegando el ledger: el destino
// declarado acredita, el origen declarado debita, las puntas PROVEEDOR no
// tocan el inventario. Debe coincidir con el materializado.
func (r *StockRepo) FoldQuantity(key entity.StockKey) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE
				WHEN m.origin_kind = $2 AND m.origin_location_id = $3
				     AND COALESCE(CASE WHEN m.origin_kind = 'OBRA' THEN m.origin_crew_id END, 0) = $4
				     AND m.origin_kind <> 'PROVEEDOR'
				THEN -ml.quantity
				ELSE 0
			END
			+
			CASE
				WHEN m.destination_kind = $2 AND m.destination_location_id = $3
				     AND COALESCE(CASE WHEN m.destination_kind = 'OBRA' THEN m.destination_crew_id END, 0) = $4
				     AND m.destination_kind <> 'PROVEEDOR'
				THEN ml.quantity
				ELSE 0
			END
		), 0)
		FROM movement_lines ml
		JOIN movements m ON m.id = ml.movement_id
		WHERE ml.material_id = $1 AND m.client_id = $5 AND ml.serialized_unit_id IS NULL`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query,
		key.MaterialID, key.LocationKind, key.LocationID, crewColumn(key), key.ClientID,
	).Scan(&qty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fold stock: %w", err)
	}
	return qty, nil
}
