package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

var (
	_ repository.MovementRepository       = (*MovementRepo)(nil)
	_ repository.StockRepository          = (*StockRepo)(nil)
	_ repository.SerializedUnitRepository = (*SerializedUnitRepo)(nil)
	_ repository.MaterialRepository       = (*MaterialRepo)(nil)
)

// MovementRepo ledger en memoria.
type MovementRepo struct{ store *Store }

// NewMovementRepository construye el adaptador sobre el store.
func NewMovementRepository(s *Store) *MovementRepo { return &MovementRepo{store: s} }

// Create asigna IDs y agrega el movimiento al ledger.
func (r *MovementRepo) Create(m *entity.Movement) error {
	s := r.store
	s.nextMovementID++
	m.ID = s.nextMovementID
	for i := range m.Lines {
		s.nextLineID++
		m.Lines[i].ID = s.nextLineID
		m.Lines[i].MovementID = m.ID
	}
	s.movements[m.ID] = m
	return nil
}

// GetByID devuelve el movimiento (nil si no existe).
func (r *MovementRepo) GetByID(id, clientID int64) (*entity.Movement, error) {
	m, ok := r.store.movements[id]
	if !ok || m.ClientID != clientID {
		return nil, nil
	}
	return m, nil
}

// ListBySerializedUnit historial de la unidad, del más reciente al más antiguo.
func (r *MovementRepo) ListBySerializedUnit(unitID, clientID int64) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if m.ClientID != clientID {
			continue
		}
		for _, l := range m.Lines {
			if l.SerializedUnitID != nil && *l.SerializedUnitID == unitID {
				list = append(list, m)
				break
			}
		}
	}
	// IDs crecientes = orden de commit; se devuelve del más reciente al más antiguo.
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// StockRepo stock a granel en memoria.
type StockRepo struct{ store *Store }

// NewStockRepository construye el adaptador sobre el store.
func NewStockRepository(s *Store) *StockRepo { return &StockRepo{store: s} }

// Get obtiene el stock de la tupla; cantidad cero si no hay entrada.
func (r *StockRepo) Get(key entity.StockKey) (*entity.Stock, error) {
	if s, ok := r.store.stock[key.String()]; ok {
		c := *s
		return &c, nil
	}
	return &entity.Stock{Key: key, Quantity: decimal.Zero}, nil
}

// GetForUpdate en memoria equivale a Get: la exclusión la da el TxRunner.
func (r *StockRepo) GetForUpdate(key entity.StockKey) (*entity.Stock, error) {
	return r.Get(key)
}

// Upsert pisa la cantidad de la tupla.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	c := *stock
	r.store.stock[stock.Key.String()] = &c
	return nil
}

// FoldQuantity pliega el ledger con los mismos efectos que el camino de escritura.
func (r *StockRepo) FoldQuantity(key entity.StockKey) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.store.movements {
		if m.ClientID != key.ClientID {
			continue
		}
		rule, ok := movement.RuleFor(m.Type)
		if !ok {
			continue
		}
		originEffect, destEffect := rule.Effects()
		for _, l := range m.Lines {
			if l.SerializedUnitID != nil || l.MaterialID != key.MaterialID {
				continue
			}
			if originEffect == movement.Debit && matchesEnd(key, rule.Origin, m.OriginLocationID, m.OriginCrewID) {
				total = total.Sub(l.Quantity)
			}
			if destEffect == movement.Credit && matchesEnd(key, rule.Destination, m.DestinationLocationID, m.DestinationCrewID) {
				total = total.Add(l.Quantity)
			}
		}
	}
	return total, nil
}

func matchesEnd(key entity.StockKey, kind movement.LocationKind, locationID, crewID *int64) bool {
	if key.LocationKind != kind || locationID == nil || key.LocationID != *locationID {
		return false
	}
	if kind != movement.KindObra {
		return key.CrewID == nil
	}
	if key.CrewID == nil {
		return crewID == nil
	}
	return crewID != nil && *key.CrewID == *crewID
}

// SerializedUnitRepo unidades serializadas en memoria.
type SerializedUnitRepo struct{ store *Store }

// NewSerializedUnitRepository construye el adaptador sobre el store.
func NewSerializedUnitRepository(s *Store) *SerializedUnitRepo {
	return &SerializedUnitRepo{store: s}
}

// Create registra la unidad y asigna su ID.
func (r *SerializedUnitRepo) Create(u *entity.SerializedUnit) error {
	s := r.store
	s.nextUnitID++
	u.ID = s.nextUnitID
	c := *u
	s.units[u.ID] = &c
	s.unitsBySerial[serialKey(u.MaterialID, u.SerialCode, u.ClientID)] = u.ID
	return nil
}

// GetByID devuelve una copia de la unidad (nil si no existe).
func (r *SerializedUnitRepo) GetByID(id, clientID int64) (*entity.SerializedUnit, error) {
	u, ok := r.store.units[id]
	if !ok || u.ClientID != clientID {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// GetBySerial busca por (material, serie, cliente).
func (r *SerializedUnitRepo) GetBySerial(materialID int64, serialCode string, clientID int64) (*entity.SerializedUnit, error) {
	id, ok := r.store.unitsBySerial[serialKey(materialID, serialCode, clientID)]
	if !ok {
		return nil, nil
	}
	return r.GetByID(id, clientID)
}

// GetBySerialForUpdate en memoria equivale a GetBySerial.
func (r *SerializedUnitRepo) GetBySerialForUpdate(materialID int64, serialCode string, clientID int64) (*entity.SerializedUnit, error) {
	return r.GetBySerial(materialID, serialCode, clientID)
}

// UpdateProjection persiste la proyección actual.
func (r *SerializedUnitRepo) UpdateProjection(u *entity.SerializedUnit) error {
	c := *u
	r.store.units[u.ID] = &c
	return nil
}

// MaterialRepo maestro de materiales en memoria (solo lectura para el motor).
type MaterialRepo struct{ store *Store }

// NewMaterialRepository construye el adaptador sobre el store.
func NewMaterialRepository(s *Store) *MaterialRepo { return &MaterialRepo{store: s} }

// GetByID devuelve el material (nil si no existe o no es del cliente).
func (r *MaterialRepo) GetByID(id, clientID int64) (*entity.Material, error) {
	m, ok := r.store.materials[id]
	if !ok || m.ClientID != clientID {
		return nil, nil
	}
	return m, nil
}
