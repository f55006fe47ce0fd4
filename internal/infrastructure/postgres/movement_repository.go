package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: las filas comprometidas nunca se editan ni se borran.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste la cabecera y todas sus líneas; asigna los IDs generados.
func (r *MovementRepo) Create(m *entity.Movement) error {
	headerQuery := `
		INSERT INTO movements (transaction_id, description, reservation_tag, type,
			origin_kind, origin_location_id, destination_kind, destination_location_id,
			origin_crew_id, destination_crew_id, client_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	var destKind *string
	if m.DestinationKind != nil {
		s := string(*m.DestinationKind)
		destKind = &s
	}
	err := r.q.QueryRow(context.Background(), headerQuery,
		m.TransactionID, m.Description, m.ReservationTag, m.Type.String(),
		string(m.OriginKind), m.OriginLocationID, destKind, m.DestinationLocationID,
		m.OriginCrewID, m.DestinationCrewID, m.ClientID, m.CreatedBy, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}

	lineQuery := `
		INSERT INTO movement_lines (movement_id, material_id, quantity, serialized_unit_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	for i := range m.Lines {
		l := &m.Lines[i]
		l.MovementID = m.ID
		err := r.q.QueryRow(context.Background(), lineQuery,
			m.ID, l.MaterialID, l.Quantity, l.SerializedUnitID, l.CreatedAt,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("create movement line: %w", err)
		}
	}
	return nil
}

const movementColumns = `
	m.id, m.transaction_id, m.description, m.reservation_tag, m.type,
	m.origin_kind, m.origin_location_id, m.destination_kind, m.destination_location_id,
	m.origin_crew_id, m.destination_crew_id, m.client_id, m.created_by, m.created_at`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var typeLabel, originKind string
	var destKind *string
	err := row.Scan(
		&m.ID, &m.TransactionID, &m.Description, &m.ReservationTag, &typeLabel,
		&originKind, &m.OriginLocationID, &destKind, &m.DestinationLocationID,
		&m.OriginCrewID, &m.DestinationCrewID, &m.ClientID, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t, ok := movement.ParseType(typeLabel)
	if !ok {
		return nil, fmt.Errorf("tipo de movimiento desconocido en BD: %q", typeLabel)
	}
	m.Type = t
	m.OriginKind = movement.LocationKind(originKind)
	if destKind != nil {
		k := movement.LocationKind(*destKind)
		m.DestinationKind = &k
	}
	return &m, nil
}

// GetByID obtiene un movimiento con sus líneas (nil si no existe).
func (r *MovementRepo) GetByID(id, clientID int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements m WHERE m.id = $1 AND m.client_id = $2`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if err := r.loadLines(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MovementRepo) loadLines(m *entity.Movement) error {
	query := `
		SELECT id, movement_id, material_id, quantity, serialized_unit_id, created_at
		FROM movement_lines WHERE movement_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, m.ID)
	if err != nil {
		return fmt.Errorf("load movement lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ID, &l.MovementID, &l.MaterialID, &l.Quantity, &l.SerializedUnitID, &l.CreatedAt); err != nil {
			return fmt.Errorf("scan movement line: %w", err)
		}
		m.Lines = append(m.Lines, l)
	}
	return rows.Err()
}

// ListBySerializedUnit historial de movimientos que tocaron una unidad,
// del más reciente al más antiguo.
func (r *MovementRepo) ListBySerializedUnit(unitID, clientID int64) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements m
		JOIN movement_lines ml ON ml.movement_id = m.id
		WHERE ml.serialized_unit_id = $1 AND m.client_id = $2
		ORDER BY m.created_at DESC, m.id DESC`
	rows, err := r.q.Query(context.Background(), query, unitID, clientID)
	if err != nil {
		return nil, fmt.Errorf("list by serialized unit: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		if err := r.loadLines(m); err != nil {
			return nil, err
		}
	}
	return list, nil
}
