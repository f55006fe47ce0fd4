package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo lectura del maestro de materiales (el CRUD vive en otro sistema).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// GetByID devuelve el material (nil si no existe o no es del cliente).
func (r *MaterialRepo) GetByID(id, clientID int64) (*entity.Material, error) {
	query := `
		SELECT id, code, description, unit_id, serialized, client_id, created_at
		FROM materials WHERE id = $1 AND client_id = $2`
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, id, clientID).Scan(
		&m.ID, &m.Code, &m.Description, &m.UnitID, &m.Serialized, &m.ClientID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}
