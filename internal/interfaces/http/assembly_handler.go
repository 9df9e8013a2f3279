package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ensamblados-api/internal/application/assembly"
	"github.com/tu-usuario/ensamblados-api/internal/application/dto"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// AssemblyHandler maneja las peticiones HTTP del motor de ensamblados (protegido).
type AssemblyHandler struct {
	uc  *assembly.UseCase
	log *logger.Logger
}

// NewAssemblyHandler construye el handler.
func NewAssemblyHandler(uc *assembly.UseCase, log *logger.Logger) *AssemblyHandler {
	return &AssemblyHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear orden de ensamblado
// @Description  Resuelve el BOM de la plantilla y reserva todos los componentes
//
//	en una sola transacción. Si falta stock devuelve 409 con la lista
//	completa de faltantes y no reserva nada.
//
// @Tags         assemblies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssemblyRequest  true  "templateId, quantity, siteId"
// @Success      201   {object}  dto.AssemblyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/assembly [post]
func (h *AssemblyHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateAssemblyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	instance, err := h.uc.CreateAssembly(c.Context(), assembly.CreateInput{
		TemplateID: in.TemplateID,
		SiteID:     in.SiteID,
		Quantity:   in.Quantity,
		ActorID:    userID,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAssemblyResponse(instance))
}

// List godoc
// @Summary      Listar órdenes de ensamblado
// @Tags         assemblies
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "Filtrar por estado del tablero"
// @Param        site_id  query  int     false  "Filtrar por sitio"
// @Success      200  {array}   dto.AssemblyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/assemblies [get]
func (h *AssemblyHandler) List(c *fiber.Ctx) error {
	var status *entity.Status
	if raw := c.Query("status"); raw != "" {
		s := entity.Status(raw)
		if !entity.ValidStatus(s) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status desconocido"})
		}
		status = &s
	}
	siteID, err := queryInt64Ptr(c, "site_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	details, err := h.uc.List(status, siteID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.AssemblyResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toAssemblyDetailResponse(d))
	}
	return c.JSON(fiber.Map{"total": len(out), "assemblies": out})
}

// GetByID godoc
// @Summary      Obtener orden de ensamblado por ID
// @Tags         assemblies
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.AssemblyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/assemblies/{id} [get]
func (h *AssemblyHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	detail, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toAssemblyDetailResponse(detail))
}

// AdvanceStatus godoc
// @Summary      Avanzar una orden en el tablero Kanban
// @Description  Acepta un paso hacia adelante en el flujo, o CANCELADO desde
//
//	cualquier estado no terminal. DONE consume lo reservado y
//	produce las unidades; CANCELADO libera las reservas.
//
// @Tags         assemblies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.AdvanceStatusRequest  true  "targetStatus"
// @Success      200   {object}  dto.AssemblyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/assemblies/{id}/status [post]
func (h *AssemblyHandler) AdvanceStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.AdvanceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	target := entity.Status(in.TargetStatus)
	if !entity.ValidStatus(target) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "targetStatus desconocido"})
	}
	instance, err := h.uc.AdvanceStatus(c.Context(), id, target, userID, in.Notes)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toAssemblyResponse(instance))
}

// Complete godoc
// @Summary      Completar una orden (atajo a TO_VERIFY -> DONE)
// @Tags         assemblies
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.AssemblyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/assemblies/{id}/complete [post]
func (h *AssemblyHandler) Complete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	instance, err := h.uc.CompleteAssembly(c.Context(), id, userID, "")
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toAssemblyResponse(instance))
}

// Cancel godoc
// @Summary      Cancelar una orden y liberar sus reservas
// @Tags         assemblies
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.AssemblyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/assemblies/{id}/cancel [post]
func (h *AssemblyHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	instance, err := h.uc.CancelAssembly(c.Context(), id, userID, "")
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toAssemblyResponse(instance))
}

func toAssemblyResponse(a *entity.AssemblyInstance) dto.AssemblyResponse {
	return dto.AssemblyResponse{
		ID:           a.ID,
		TemplateID:   a.TemplateID,
		SiteID:       a.SiteID,
		Quantity:     a.Quantity,
		Status:       string(a.Status),
		CreatedBy:    a.CreatedBy,
		AssignedTo:   a.AssignedTo,
		CompletedBy:  a.CompletedBy,
		VerifiedBy:   a.VerifiedBy,
		BacklogAt:    a.BacklogAt,
		TodoAt:       a.TodoAt,
		InProgressAt: a.InProgressAt,
		ToVerifyAt:   a.ToVerifyAt,
		DoneAt:       a.DoneAt,
		CompletedAt:  a.CompletedAt,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAssemblyDetailResponse(d *entity.AssemblyDetail) dto.AssemblyResponse {
	resp := toAssemblyResponse(&d.AssemblyInstance)
	resp.TemplateSKU = d.TemplateSKU
	resp.TemplateName = d.TemplateName
	resp.SiteName = d.SiteName
	return resp
}
