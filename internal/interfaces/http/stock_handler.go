package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/EduardoLubo/materiales-api/internal/application/dto"
	appledger "github.com/EduardoLubo/materiales-api/internal/application/ledger"
	"github.com/EduardoLubo/materiales-api/internal/domain"
	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

// StockHandler lecturas de stock y unidades serializadas (reporting/UI).
type StockHandler struct {
	query *appledger.QueryUseCase
	log   zerolog.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(query *appledger.QueryUseCase, log zerolog.Logger) *StockHandler {
	return &StockHandler{query: query, log: log}
}

// GetStock stock actual de una tupla: material_id, location_kind, location_id
// y crew_id opcional por query string.
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "faltan credenciales"})
	}
	materialID, err1 := strconv.ParseInt(c.Query("material_id"), 10, 64)
	locationID, err2 := strconv.ParseInt(c.Query("location_id"), 10, 64)
	kind := movement.LocationKind(c.Query("location_kind"))
	if err1 != nil || err2 != nil || (kind != movement.KindDeposito && kind != movement.KindObra) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "material_id, location_kind (DEPOSITO|OBRA) y location_id son obligatorios"})
	}
	key := entity.StockKey{
		MaterialID:   materialID,
		LocationKind: kind,
		LocationID:   locationID,
		ClientID:     clientID,
	}
	if raw := c.Query("crew_id"); raw != "" {
		crewID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "crew_id inválido"})
		}
		key.CrewID = &crewID
	}

	qty, err := h.query.AvailableQuantity(key)
	if err != nil {
		h.log.Error().Err(err).Msg("consultar stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(dto.StockResponse{
		MaterialID:   key.MaterialID,
		LocationKind: string(key.LocationKind),
		LocationID:   key.LocationID,
		CrewID:       key.CrewID,
		Quantity:     qty,
	})
}

// GetUnit proyección actual de una unidad serializada.
func (h *StockHandler) GetUnit(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "faltan credenciales"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	u, err := h.query.UnitProjection(int64(id), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada"})
		}
		h.log.Error().Err(err).Msg("consultar unidad")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	out := dto.SerializedUnitResponse{
		ID:         u.ID,
		MaterialID: u.MaterialID,
		SerialCode: u.SerialCode,
		State:      string(u.State),
		LocationID: u.LocationID,
		CrewID:     u.CrewID,
	}
	if u.LocationKind != nil {
		k := string(*u.LocationKind)
		out.LocationKind = &k
	}
	return c.JSON(out)
}

// GetUnitHistory historial completo de movimientos de una unidad serializada.
func (h *StockHandler) GetUnitHistory(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "faltan credenciales"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	history, err := h.query.UnitHistory(int64(id), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada"})
		}
		h.log.Error().Err(err).Msg("consultar historial de unidad")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	out := make([]fiber.Map, 0, len(history))
	for _, m := range history {
		out = append(out, fiber.Map{
			"movement_id": m.ID,
			"type":        m.Type.String(),
			"created_at":  m.CreatedAt,
			"created_by":  m.CreatedBy,
		})
	}
	return c.JSON(out)
}
