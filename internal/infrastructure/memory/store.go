// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Es el doble de pruebas del motor: mismas semánticas de atomicidad
// (snapshot + restore por transacción) sin PostgreSQL. La granularidad fina de
// bloqueo por tupla es propiedad de la implementación postgres.
package memory

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
)

// Store estado compartido de los repositorios en memoria. Las transacciones
// (TxRunner) lo serializan con el mutex; los repos asumen que el caller ya
// coordina el acceso.
type Store struct {
	mu sync.Mutex

	nextMovementID int64
	nextLineID     int64
	nextUnitID     int64

	movements     map[int64]*entity.Movement
	stock         map[string]*entity.Stock
	units         map[int64]*entity.SerializedUnit
	unitsBySerial map[string]int64
	materials     map[int64]*entity.Material
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		movements:     make(map[int64]*entity.Movement),
		stock:         make(map[string]*entity.Stock),
		units:         make(map[int64]*entity.SerializedUnit),
		unitsBySerial: make(map[string]int64),
		materials:     make(map[int64]*entity.Material),
	}
}

func serialKey(materialID int64, serialCode string, clientID int64) string {
	return fmt.Sprintf("%d/%s/%d", materialID, serialCode, clientID)
}

// SeedMaterial carga un material del maestro (datos de colaborador, confiados).
func (s *Store) SeedMaterial(m entity.Material) {
	mat := m
	s.materials[m.ID] = &mat
}

// SeedStock carga stock inicial en una tupla.
func (s *Store) SeedStock(key entity.StockKey, qty decimal.Decimal) {
	s.stock[key.String()] = &entity.Stock{Key: key, Quantity: qty}
}

// SeedUnit carga una unidad serializada con su proyección actual.
func (s *Store) SeedUnit(u entity.SerializedUnit) {
	if u.ID == 0 {
		s.nextUnitID++
		u.ID = s.nextUnitID
	} else if u.ID > s.nextUnitID {
		s.nextUnitID = u.ID
	}
	unit := u
	s.units[u.ID] = &unit
	s.unitsBySerial[serialKey(u.MaterialID, u.SerialCode, u.ClientID)] = u.ID
}

// snapshot copia profunda del estado mutable (para rollback).
type snapshot struct {
	nextMovementID int64
	nextLineID     int64
	nextUnitID     int64
	movements      map[int64]*entity.Movement
	stock          map[string]*entity.Stock
	units          map[int64]*entity.SerializedUnit
	unitsBySerial  map[string]int64
}

func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		nextMovementID: s.nextMovementID,
		nextLineID:     s.nextLineID,
		nextUnitID:     s.nextUnitID,
		movements:      make(map[int64]*entity.Movement, len(s.movements)),
		stock:          make(map[string]*entity.Stock, len(s.stock)),
		units:          make(map[int64]*entity.SerializedUnit, len(s.units)),
		unitsBySerial:  make(map[string]int64, len(s.unitsBySerial)),
	}
	// Los movimientos son inmutables una vez escritos: alcanza con copiar la
	// referencia. Stock y unidades sí mutan, se copian por valor.
	for id, m := range s.movements {
		snap.movements[id] = m
	}
	for k, st := range s.stock {
		c := *st
		snap.stock[k] = &c
	}
	for id, u := range s.units {
		c := *u
		snap.units[id] = &c
	}
	for k, id := range s.unitsBySerial {
		snap.unitsBySerial[k] = id
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.nextMovementID = snap.nextMovementID
	s.nextLineID = snap.nextLineID
	s.nextUnitID = snap.nextUnitID
	s.movements = snap.movements
	s.stock = snap.stock
	s.units = snap.units
	s.unitsBySerial = snap.unitsBySerial
}
