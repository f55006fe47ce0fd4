package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/EduardoLubo/materiales-api/internal/domain"
	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

// maxCommitRetries reintentos ante fallas de serialización (40001/40P01)
// antes de devolver el conflicto al caller. Único caso con reintento automático.
const maxCommitRetries = 3

// CommitUseCase coordinador de commit: valida, y dentro de una única
// transacción verifica stock con bloqueo de fila, escribe el ledger y proyecta
// las unidades serializadas. Ante cualquier falla no persiste nada.
type CommitUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
}

// NewCommitUseCase construye el caso de uso.
func NewCommitUseCase(txRunner TxRunner, log zerolog.Logger) *CommitUseCase {
	return &CommitUseCase{txRunner: txRunner, log: log}
}

// Commit compromete un pedido normalizado. Devuelve el id del movimiento, o
// *movement.ValidationError / *movement.InsufficientStockError /
// domain.ErrConcurrencyConflict.
func (uc *CommitUseCase) Commit(ctx context.Context, req movement.Request) (int64, error) {
	validated, err := Validate(req)
	if err != nil {
		return 0, err
	}

	var movementID int64
	var lastErr error
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		err := uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			stockRepo repository.StockRepository,
			unitRepo repository.SerializedUnitRepository,
			materialRepo repository.MaterialRepository,
		) error {
			id, err := commitTx(validated, movRepo, stockRepo, unitRepo, materialRepo)
			if err != nil {
				return err
			}
			movementID = id
			return nil
		})
		if err == nil {
			return movementID, nil
		}
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			lastErr = err
			uc.log.Warn().
				Int("attempt", attempt+1).
				Str("type", validated.Type.String()).
				Msg("conflicto de concurrencia al comprometer, se reintenta")
			continue
		}
		return 0, err
	}
	return 0, lastErr
}

// stockDelta efecto acumulado sobre una tupla de stock dentro del commit.
type stockDelta struct {
	key   entity.StockKey
	delta decimal.Decimal
}

// commitTx cuerpo del commit, ya adentro de la transacción.
func commitTx(
	v movement.Validated,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	unitRepo repository.SerializedUnitRepository,
	materialRepo repository.MaterialRepository,
) (int64, error) {
	now := time.Now()
	originEffect, destEffect := v.Rule.Effects()

	originKey := func(materialID int64) entity.StockKey {
		return entity.StockKey{
			MaterialID:   materialID,
			LocationKind: v.Rule.Origin,
			LocationID:   *v.OriginLocationID,
			CrewID:       crewFor(v.Rule.Origin, v.OriginCrewID),
			ClientID:     v.ClientID,
		}
	}
	destKey := func(materialID int64) entity.StockKey {
		return entity.StockKey{
			MaterialID:   materialID,
			LocationKind: v.Rule.Destination,
			LocationID:   *v.DestinationLocationID,
			CrewID:       crewFor(v.Rule.Destination, v.DestinationCrewID),
			ClientID:     v.ClientID,
		}
	}

	// Resolver materiales y chequear coherencia serializado/granel.
	materials := make(map[int64]*entity.Material, len(v.Lines))
	for _, l := range v.Lines {
		if _, ok := materials[l.MaterialID]; ok {
			continue
		}
		mat, err := materialRepo.GetByID(l.MaterialID, v.ClientID)
		if err != nil {
			return 0, err
		}
		if mat == nil {
			return 0, fmt.Errorf("material %d: %w", l.MaterialID, domain.ErrNotFound)
		}
		materials[l.MaterialID] = mat
	}
	for _, l := range v.Lines {
		mat := materials[l.MaterialID]
		if mat.Serialized != l.Serialized() {
			return 0, movement.NewValidationError(movement.KindSerializedMismatch,
				fmt.Sprintf("material %s: la línea no coincide con su condición de serializado", mat.Code))
		}
	}

	// Efectos sobre el stock a granel, acumulados por tupla.
	deltas := make(map[string]*stockDelta)
	accumulate := func(key entity.StockKey, d decimal.Decimal) {
		if e, ok := deltas[key.String()]; ok {
			e.delta = e.delta.Add(d)
			return
		}
		deltas[key.String()] = &stockDelta{key: key, delta: d}
	}
	for _, l := range v.Lines {
		if l.Serialized() {
			continue
		}
		if originEffect == movement.Debit {
			accumulate(originKey(l.MaterialID), l.Quantity.Neg())
		}
		if destEffect == movement.Credit {
			accumulate(destKey(l.MaterialID), l.Quantity)
		}
	}

	// Bloquear todas las filas de stock afectadas en orden global estable:
	// dos commits que comparten tuplas las toman en el mismo orden y no se
	// pueden abrazar mutuamente.
	keys := make([]string, 0, len(deltas))
	for k := range deltas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	locked := make(map[string]*entity.Stock, len(keys))
	for _, k := range keys {
		s, err := stockRepo.GetForUpdate(deltas[k].key)
		if err != nil {
			return 0, err
		}
		locked[k] = s
	}

	// Verificación de disponibilidad: se juntan todos los faltantes, no solo
	// el primero. Una línea corta falla el movimiento completo.
	var shortfalls []movement.Shortfall
	if originEffect == movement.Debit {
		for _, l := range v.Lines {
			if l.Serialized() {
				continue
			}
			available := locked[originKey(l.MaterialID).String()].Quantity
			if available.LessThan(l.Quantity) {
				shortfalls = append(shortfalls, movement.Shortfall{
					MaterialID:   l.MaterialID,
					MaterialCode: materials[l.MaterialID].Code,
					Requested:    l.Quantity,
					Available:    available,
				})
			}
		}
	}

	// Unidades serializadas: bloquear en orden estable y verificar que la
	// proyección actual coincida con el origen declarado.
	type serialRef struct {
		materialID int64
		serial     string
	}
	serialOrder := make([]serialRef, 0)
	for _, l := range v.Lines {
		if l.Serialized() {
			serialOrder = append(serialOrder, serialRef{l.MaterialID, l.SerialCode})
		}
	}
	sort.Slice(serialOrder, func(i, j int) bool {
		if serialOrder[i].materialID != serialOrder[j].materialID {
			return serialOrder[i].materialID < serialOrder[j].materialID
		}
		return serialOrder[i].serial < serialOrder[j].serial
	})

	units := make(map[serialRef]*entity.SerializedUnit, len(serialOrder))
	for _, ref := range serialOrder {
		unit, err := unitRepo.GetBySerialForUpdate(ref.materialID, ref.serial, v.ClientID)
		if err != nil {
			return 0, err
		}
		mat := materials[ref.materialID]

		if v.Type == movement.TypeIngresoProveedor {
			// Primera recepción: la serie no puede existir todavía.
			if unit != nil {
				return 0, movement.NewValidationError(movement.KindDuplicateSerializedUnit,
					fmt.Sprintf("material %s: la serie %s ya está registrada", mat.Code, ref.serial))
			}
			continue
		}

		if unit == nil {
			shortfalls = append(shortfalls, movement.Shortfall{
				MaterialID:   ref.materialID,
				MaterialCode: mat.Code,
				SerialCode:   ref.serial,
				Requested:    decimal.NewFromInt(1),
				Available:    decimal.Zero,
			})
			continue
		}
		if unit.State == movement.StateBaja {
			return 0, movement.NewValidationError(movement.KindUnitDecommissioned,
				fmt.Sprintf("material %s: la serie %s está dada de baja", mat.Code, ref.serial))
		}
		if !unitAtOrigin(unit, v) {
			shortfalls = append(shortfalls, movement.Shortfall{
				MaterialID:   ref.materialID,
				MaterialCode: mat.Code,
				SerialCode:   ref.serial,
				Requested:    decimal.NewFromInt(1),
				Available:    decimal.Zero,
			})
			continue
		}
		units[ref] = unit
	}

	if len(shortfalls) > 0 {
		return 0, &movement.InsufficientStockError{Lines: shortfalls}
	}

	// Crear las unidades nuevas de una recepción antes de escribir las líneas,
	// para que cada línea quede atada a su unidad.
	if v.Type == movement.TypeIngresoProveedor {
		for _, ref := range serialOrder {
			unit := &entity.SerializedUnit{
				MaterialID: ref.materialID,
				SerialCode: ref.serial,
				ClientID:   v.ClientID,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			proj, err := movement.NextProjection(v.Type, movement.Projection{},
				v.DestinationLocationID, v.OriginCrewID, v.DestinationCrewID)
			if err != nil {
				return 0, err
			}
			unit.ApplyProjection(proj, now)
			if err := unitRepo.Create(unit); err != nil {
				return 0, err
			}
			units[serialRef{ref.materialID, ref.serial}] = unit
		}
	}

	// Cabecera + líneas: el hecho inmutable del ledger.
	header := &entity.Movement{
		TransactionID:    uuid.New().String(),
		Description:      v.Description,
		ReservationTag:   v.ReservationTag,
		Type:             v.Type,
		OriginKind:       v.Rule.Origin,
		OriginLocationID: v.OriginLocationID,
		OriginCrewID:     v.OriginCrewID,
		ClientID:         v.ClientID,
		CreatedBy:        v.UserID,
		CreatedAt:        now,
	}
	if v.Rule.HasDestination {
		destKind := v.Rule.Destination
		header.DestinationKind = &destKind
		header.DestinationLocationID = v.DestinationLocationID
		header.DestinationCrewID = v.DestinationCrewID
	}
	for _, l := range v.Lines {
		line := entity.MovementLine{
			MaterialID: l.MaterialID,
			Quantity:   l.Quantity,
			CreatedAt:  now,
		}
		if l.Serialized() {
			unit := units[serialRef{l.MaterialID, l.SerialCode}]
			unitID := unit.ID
			line.SerializedUnitID = &unitID
		}
		header.Lines = append(header.Lines, line)
	}
	if err := movRepo.Create(header); err != nil {
		return 0, err
	}

	// Mantener el materializado dentro de la misma transacción.
	for _, k := range keys {
		s := locked[k]
		s.Quantity = s.Quantity.Add(deltas[k].delta)
		s.UpdatedAt = now
		if s.Quantity.IsNegative() {
			// No debería pasar tras la verificación; el rollback protege el invariante.
			return 0, domain.ErrInsufficientStock
		}
		if err := stockRepo.Upsert(s); err != nil {
			return 0, err
		}
	}

	// Proyección de las unidades ya existentes (las de recepción salieron
	// creadas con su proyección final).
	if v.Type != movement.TypeIngresoProveedor {
		for _, ref := range serialOrder {
			unit := units[serialRef{ref.materialID, ref.serial}]
			proj, err := movement.NextProjection(v.Type, unit.Projection(),
				v.DestinationLocationID, v.OriginCrewID, v.DestinationCrewID)
			if err != nil {
				return 0, err
			}
			unit.ApplyProjection(proj, now)
			if err := unitRepo.UpdateProjection(unit); err != nil {
				return 0, err
			}
		}
	}

	return header.ID, nil
}

// crewFor cuadrilla que integra la tupla de stock: solo las puntas OBRA
// llevan cuadrilla; en depósito el stock no pertenece a nadie.
func crewFor(kind movement.LocationKind, crewID *int64) *int64 {
	if kind != movement.KindObra {
		return nil
	}
	return crewID
}

// unitAtOrigin verifica que la proyección actual de la unidad coincida con el
// origen declarado del movimiento (ubicación y, si aplica, cuadrilla).
func unitAtOrigin(unit *entity.SerializedUnit, v movement.Validated) bool {
	if unit.LocationKind == nil || *unit.LocationKind != v.Rule.Origin {
		return false
	}
	if unit.LocationID == nil || *unit.LocationID != *v.OriginLocationID {
		return false
	}
	if v.Rule.RequiresOriginCrew {
		if unit.CrewID == nil || v.OriginCrewID == nil || *unit.CrewID != *v.OriginCrewID {
			return false
		}
	}
	return true
}
