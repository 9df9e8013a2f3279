package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ensamblados-api/internal/application/dto"
	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// respondError traduce errores del dominio a respuestas HTTP.
// Los errores de consistencia interna nunca exponen detalle al cliente:
// se registran completos en el log y se devuelve un 500 genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		resp := dto.InsufficientStockResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente para completar la operación",
		}
		for _, s := range insufficient.Shortfalls {
			resp.InsufficientComponents = append(resp.InsufficientComponents, dto.InsufficientComponent{
				ItemID:    s.ItemID,
				SKU:       s.SKU,
				Name:      s.Name,
				Required:  s.Required,
				Available: s.Available,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(resp)
	}

	var transition *domain.InvalidTransitionError
	if errors.As(err, &transition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INVALID_TRANSITION",
			Message: fmt.Sprintf("transición no permitida: %s -> %s", transition.Current, transition.Requested),
		})
	}

	var inconsistent *domain.InconsistentStockError
	if errors.As(err, &inconsistent) {
		log.Error().
			Int64("item_id", inconsistent.ItemID).
			Int64("site_id", inconsistent.SiteID).
			Str("on_hand", inconsistent.OnHand.String()).
			Str("reserved", inconsistent.Reserved.String()).
			Str("op", inconsistent.Op).
			Msg("stock inconsistente detectado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrSinMateriales):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SIN_MATERIALES", Message: "la plantilla no tiene lista de materiales"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}

	log.Error().Err(err).Msg("error no clasificado en handler")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
