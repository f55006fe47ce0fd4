package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EduardoLubo/materiales-api/internal/domain"
	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

var _ repository.SerializedUnitRepository = (*SerializedUnitRepo)(nil)

// SerializedUnitRepo unidades serializadas sobre PostgreSQL (usable con pool o tx).
type SerializedUnitRepo struct {
	q Querier
}

// NewSerializedUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerializedUnitRepository(q Querier) *SerializedUnitRepo {
	return &SerializedUnitRepo{q: q}
}

// Create registra la unidad en su primera recepción; asigna el ID generado.
// La serie es única por material + cliente (constraint de BD).
func (r *SerializedUnitRepo) Create(u *entity.SerializedUnit) error {
	query := `
		INSERT INTO serialized_units (material_id, serial_code, client_id,
			location_kind, location_id, crew_id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		u.MaterialID, u.SerialCode, u.ClientID,
		kindPtr(u.LocationKind), u.LocationID, u.CrewID, string(u.State),
		u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("serie %s: %w", u.SerialCode, domain.ErrDuplicate)
		}
		return fmt.Errorf("create serialized unit: %w", err)
	}
	return nil
}

const unitColumns = `id, material_id, serial_code, client_id, location_kind, location_id, crew_id, state, created_at, updated_at`

func scanUnit(row pgx.Row) (*entity.SerializedUnit, error) {
	var u entity.SerializedUnit
	var kind *string
	var state string
	err := row.Scan(&u.ID, &u.MaterialID, &u.SerialCode, &u.ClientID,
		&kind, &u.LocationID, &u.CrewID, &state, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if kind != nil {
		k := movement.LocationKind(*kind)
		u.LocationKind = &k
	}
	u.State = movement.UnitState(state)
	return &u, nil
}

// GetByID devuelve la unidad (nil si no existe o no es del cliente).
func (r *SerializedUnitRepo) GetByID(id, clientID int64) (*entity.SerializedUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM serialized_units WHERE id = $1 AND client_id = $2`
	u, err := scanUnit(r.q.QueryRow(context.Background(), query, id, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serialized unit: %w", err)
	}
	return u, nil
}

// GetBySerial busca por (material, serie, cliente); nil si no existe.
func (r *SerializedUnitRepo) GetBySerial(materialID int64, serialCode string, clientID int64) (*entity.SerializedUnit, error) {
	return r.getBySerial(materialID, serialCode, clientID, false)
}

// GetBySerialForUpdate ídem GetBySerial bloqueando la fila: dos commits
// concurrentes sobre la misma unidad se excluyen acá.
func (r *SerializedUnitRepo) GetBySerialForUpdate(materialID int64, serialCode string, clientID int64) (*entity.SerializedUnit, error) {
	return r.getBySerial(materialID, serialCode, clientID, true)
}

func (r *SerializedUnitRepo) getBySerial(materialID int64, serialCode string, clientID int64, forUpdate bool) (*entity.SerializedUnit, error) {
	query := `SELECT ` + unitColumns + `
		FROM serialized_units
		WHERE material_id = $1 AND serial_code = $2 AND client_id = $3`
	if forUpdate {
		query += " FOR UPDATE"
	}
	u, err := scanUnit(r.q.QueryRow(context.Background(), query, materialID, serialCode, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit by serial: %w", err)
	}
	return u, nil
}

// UpdateProjection persiste la proyección actual de la unidad.
func (r *SerializedUnitRepo) UpdateProjection(u *entity.SerializedUnit) error {
	query := `
		UPDATE serialized_units
		SET location_kind = $1, location_id = $2, crew_id = $3, state = $4, updated_at = $5
		WHERE id = $6 AND client_id = $7`
	tag, err := r.q.Exec(context.Background(), query,
		kindPtr(u.LocationKind), u.LocationID, u.CrewID, string(u.State), u.UpdatedAt,
		u.ID, u.ClientID,
	)
	if err != nil {
		return fmt.Errorf("update unit projection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unidad %d: %w", u.ID, domain.ErrNotFound)
	}
	return nil
}

func kindPtr(k *movement.LocationKind) *string {
	if k == nil {
		return nil
	}
	s := string(*k)
	return &s
}
