package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ensamblados-api/internal/application/dto"
	"github.com/tu-usuario/ensamblados-api/internal/application/stock"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// StockHandler maneja las peticiones HTTP de stock, ajustes y bitácora (protegido).
type StockHandler struct {
	uc  *stock.UseCase
	log *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// queryInt64Ptr lee un query param numérico opcional. Devuelve nil si está ausente.
func queryInt64Ptr(c *fiber.Ctx, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s inválido", key)
	}
	return &v, nil
}

// List godoc
// @Summary      Listar stock por item y sitio
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  int  false  "Filtrar por item"
// @Param        site_id  query  int  false  "Filtrar por sitio"
// @Success      200  {array}   dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	itemID, err := queryInt64Ptr(c, "item_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	siteID, err := queryInt64Ptr(c, "site_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rows, err := h.uc.ListStock(itemID, siteID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.StockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStockResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "stock": out})
}

// Availability godoc
// @Summary      Disponibilidad puntual de un item en un sitio
// @Description  Devuelve on_hand, reserved y available (on_hand - reserved).
//
//	Si el par (item, site) no tiene fila de stock, todo es cero.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  int  true  "ID del item"
// @Param        site_id  query  int  true  "ID del sitio"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Query("item_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id requerido"})
	}
	siteID, err := strconv.ParseInt(c.Query("site_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "site_id requerido"})
	}
	onHand, reserved, available, err := h.uc.Availability(itemID, siteID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		ItemID:    itemID,
		SiteID:    siteID,
		OnHand:    onHand,
		Reserved:  reserved,
		Available: available,
	})
}

// ListBySite godoc
// @Summary      Stock completo de un sitio
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        siteId  path  int  true  "ID del sitio"
// @Success      200  {array}   dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/by-site/{siteId} [get]
func (h *StockHandler) ListBySite(c *fiber.Ctx) error {
	siteID, err := strconv.ParseInt(c.Params("siteId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "siteId inválido"})
	}
	rows, err := h.uc.ListBySite(siteID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.StockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStockResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "stock": out})
}

// Adjust godoc
// @Summary      Ajuste manual de stock (ENTRADA, SALIDA o AJUSTE)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "itemId, siteId, quantity, adjustment_type"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	err := h.uc.AdjustStock(c.Context(), stock.AdjustInput{
		ItemID:  in.ItemID,
		SiteID:  in.SiteID,
		Qty:     in.Quantity,
		Type:    in.AdjustmentType,
		ActorID: userID,
		Notes:   in.Notes,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// ListMovements godoc
// @Summary      Bitácora de movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  int  false  "Filtrar por item"
// @Param        site_id  query  int  false  "Filtrar por sitio"
// @Param        limit    query  int  false  "Tamaño de página"
// @Param        offset   query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	itemID, err := queryInt64Ptr(c, "item_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	siteID, err := queryInt64Ptr(c, "site_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movs, err := h.uc.ListMovements(itemID, siteID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ItemID:        m.ItemID,
			SiteID:        m.SiteID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			Notes:         m.Notes,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ExportExcel godoc
// @Summary      Exportar el stock actual a Excel
// @Tags         stock
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        site_id  query  int  false  "Filtrar por sitio"
// @Success      200
// @Router       /api/stock/export [get]
func (h *StockHandler) ExportExcel(c *fiber.Ctx) error {
	siteID, err := queryInt64Ptr(c, "site_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rows, err := h.uc.ListStock(nil, siteID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "SKU")
	f.SetCellValue(sheet, "B1", "Nombre")
	f.SetCellValue(sheet, "C1", "Tipo")
	f.SetCellValue(sheet, "D1", "Unidad")
	f.SetCellValue(sheet, "E1", "Sitio")
	f.SetCellValue(sheet, "F1", "Físico")
	f.SetCellValue(sheet, "G1", "Reservado")
	f.SetCellValue(sheet, "H1", "Disponible")

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ItemSKU)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.ItemType)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.UomSymbol)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.SiteName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.OnHand.String())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Reserved.String())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Available().String())
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="stock.xlsx"`)

	if err := f.Write(c.Response().BodyWriter()); err != nil {
		h.log.Error().Err(err).Msg("generar Excel de stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el Excel"})
	}
	return nil
}

func toStockResponse(r *entity.StockDetail) dto.StockResponse {
	return dto.StockResponse{
		ItemID:    r.ItemID,
		ItemSKU:   r.ItemSKU,
		ItemName:  r.ItemName,
		ItemType:  r.ItemType,
		UomSymbol: r.UomSymbol,
		SiteID:    r.SiteID,
		SiteName:  r.SiteName,
		OnHand:    r.OnHand,
		Reserved:  r.Reserved,
		Available: r.Available(),
	}
}
