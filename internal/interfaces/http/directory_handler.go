package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ensamblados-api/internal/application/catalog"
	"github.com/tu-usuario/ensamblados-api/internal/application/dto"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// DirectoryHandler sitios, usuarios y unidades de medida (protegido).
type DirectoryHandler struct {
	uc  *catalog.DirectoryUseCase
	log *logger.Logger
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *catalog.DirectoryUseCase, log *logger.Logger) *DirectoryHandler {
	return &DirectoryHandler{uc: uc, log: log}
}

// CreateSite godoc
// @Summary      Crear sitio
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSiteRequest  true  "name"
// @Success      201   {object}  dto.SiteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sites [post]
func (h *DirectoryHandler) CreateSite(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	site, err := h.uc.CreateSite(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(site)
}

// GetSite godoc
// @Summary      Obtener sitio por ID
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del sitio"
// @Success      200  {object}  dto.SiteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sites/{id} [get]
func (h *DirectoryHandler) GetSite(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	site, err := h.uc.GetSite(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(site)
}

// ListSites godoc
// @Summary      Listar sitios
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SiteResponse
// @Router       /api/sites [get]
func (h *DirectoryHandler) ListSites(c *fiber.Ctx) error {
	sites, err := h.uc.ListSites()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(sites), "sites": sites})
}

// GetUser godoc
// @Summary      Obtener usuario por ID
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *DirectoryHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	user, err := h.uc.GetUser(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

// ListUsers godoc
// @Summary      Listar usuarios del directorio
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(users), "users": users})
}

// ListUoms godoc
// @Summary      Listar unidades de medida
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UomResponse
// @Router       /api/uoms [get]
func (h *DirectoryHandler) ListUoms(c *fiber.Ctx) error {
	uoms, err := h.uc.ListUoms()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(uoms), "uoms": uoms})
}
