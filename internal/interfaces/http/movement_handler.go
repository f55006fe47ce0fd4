package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/EduardoLubo/materiales-api/internal/application/dto"
	appledger "github.com/EduardoLubo/materiales-api/internal/application/ledger"
	"github.com/EduardoLubo/materiales-api/internal/domain"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

// MovementHandler maneja las peticiones HTTP del motor de movimientos.
type MovementHandler struct {
	commit *appledger.CommitUseCase
	query  *appledger.QueryUseCase
	log    zerolog.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(commit *appledger.CommitUseCase, query *appledger.QueryUseCase, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{commit: commit, query: query, log: log}
}

// Create registra un movimiento: normaliza, valida y compromete en una única
// transacción. 201 con el id; 400 validación; 409 faltantes o conflicto.
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	userID := GetUserID(c)
	if clientID == 0 || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "faltan credenciales"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	req := appledger.Normalize(in, clientID, userID)
	id, err := h.commit.Commit(c.Context(), req)
	if err != nil {
		return h.writeCommitError(c, err)
	}

	h.log.Info().
		Int64("movement_id", id).
		Str("type", req.TypeLabel).
		Int("lines", len(req.Lines)).
		Int64("client_id", clientID).
		Msg("movimiento comprometido")
	return c.Status(fiber.StatusCreated).JSON(dto.MovementCreatedResponse{ID: id})
}

// writeCommitError distingue validación (formulario) de faltantes (diálogo de
// stock): ambos son resultados frecuentes y esperados, no fallas del sistema.
func (h *MovementHandler) writeCommitError(c *fiber.Ctx, err error) error {
	var vErr *movement.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    string(vErr.Kind),
			Message: vErr.Detail,
		})
	}
	var stockErr *movement.InsufficientStockError
	if errors.As(err, &stockErr) {
		out := dto.InsufficientStockResponse{Code: "INSUFFICIENT_STOCK"}
		for _, s := range stockErr.Lines {
			out.Lines = append(out.Lines, dto.ShortfallDTO{
				MaterialID:   s.MaterialID,
				MaterialCode: s.MaterialCode,
				SerialCode:   s.SerialCode,
				Requested:    s.Requested,
				Available:    s.Available,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(out)
	}
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintentar"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	h.log.Error().Err(err).Msg("commit de movimiento")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// GetByID devuelve un movimiento comprometido con sus líneas (vista de auditoría).
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "faltan credenciales"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	m, err := h.query.MovementByID(int64(id), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		h.log.Error().Err(err).Msg("consultar movimiento")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}

	out := dto.MovementResponse{
		ID:                    m.ID,
		Description:           m.Description,
		ReservationTag:        m.ReservationTag,
		Type:                  m.Type.String(),
		OriginKind:            string(m.OriginKind),
		OriginLocationID:      m.OriginLocationID,
		DestinationLocationID: m.DestinationLocationID,
		OriginCrewID:          m.OriginCrewID,
		DestinationCrewID:     m.DestinationCrewID,
		CreatedBy:             m.CreatedBy,
		CreatedAt:             m.CreatedAt.Format(time.RFC3339),
	}
	if m.DestinationKind != nil {
		k := string(*m.DestinationKind)
		out.DestinationKind = &k
	}
	for _, l := range m.Lines {
		out.Lines = append(out.Lines, dto.MovementLineResponse{
			ID:               l.ID,
			MaterialID:       l.MaterialID,
			Quantity:         l.Quantity,
			SerializedUnitID: l.SerializedUnitID,
		})
	}
	return c.JSON(out)
}

// ListTypes expone la tabla de reglas (para armado de formularios en la UI).
func (h *MovementHandler) ListTypes(c *fiber.Ctx) error {
	var out []dto.MovementTypeRuleDTO
	for _, t := range movement.AllTypes() {
		rule, _ := movement.RuleFor(t)
		entry := dto.MovementTypeRuleDTO{
			Type:                    t.String(),
			OriginKind:              string(rule.Origin),
			RequiresOriginCrew:      rule.RequiresOriginCrew,
			RequiresDestinationCrew: rule.RequiresDestinationCrew,
		}
		if rule.HasDestination {
			entry.DestinationKind = string(rule.Destination)
		}
		out = append(out, entry)
	}
	return c.JSON(out)
}
