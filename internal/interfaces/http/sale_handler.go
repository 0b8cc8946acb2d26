package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/sales"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// SaleHandler maneja las peticiones HTTP de ventas: registro atómico,
// consultas, historiales, entradas de mercancía, recibo en PDF y eliminación
// con restauración de stock.
type SaleHandler struct {
	registerUC *sales.RegisterSaleUseCase
	deleteUC   *sales.DeleteSaleUseCase
	restockUC  *sales.RestockUseCase
	queryUC    *sales.SaleQueryUseCase
	receiptUC  *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	registerUC *sales.RegisterSaleUseCase,
	deleteUC *sales.DeleteSaleUseCase,
	restockUC *sales.RestockUseCase,
	queryUC *sales.SaleQueryUseCase,
	receiptUC *sales.ReceiptUseCase,
) *SaleHandler {
	return &SaleHandler{
		registerUC: registerUC,
		deleteUC:   deleteUC,
		restockUC:  restockUC,
		queryUC:    queryUC,
		receiptUC:  receiptUC,
	}
}

// Register godoc
// @Summary      Registrar venta multi-ítem (atómica)
// @Description  Valida stock bajo lock de fila y decrementa inventario. El precio unitario lo fija el servidor. Cualquier ítem inválido aborta el lote completo.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Cliente e ítems (producto, cantidad)"
// @Success      201   {object}  dto.RegisterSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := sales.RegisterSaleInput{CustomerID: in.CustomerID}
	for _, item := range in.Items {
		input.Items = append(input.Items, sales.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	saleID, err := h.registerUC.RegisterSale(c.Context(), input)
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterSaleResponse{SaleID: saleID})
}

// GetByID godoc
// @Summary      Obtener venta con sus ítems
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, items, err := h.queryUC.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.JSON(toSaleResponse(sale, "", items))
}

// List godoc
// @Summary      Listar ventas (más recientes primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	views, err := h.queryUC.List(c.Context(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.SaleResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toSaleResponse(&v.Sale, v.CustomerName, nil))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta restaurando el stock de sus ítems (solo admin)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.deleteUC.DeleteSale(c.Context(), c.Params("id")); err != nil {
		return mapSaleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Descargar recibo de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	saleID := c.Params("id")
	pdfBytes, err := h.receiptUC.Generate(c.Context(), saleID)
	if err != nil {
		return mapSaleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="recibo-%s.pdf"`, saleID))
	return c.Send(pdfBytes)
}

// Restock godoc
// @Summary      Registrar entrada de mercancía (incrementa stock)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "Producto, cantidad y precio de compra"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restocks [post]
func (h *SaleHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	restockID, err := h.restockUC.RegisterRestock(c.Context(), sales.RestockInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
	})
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"restock_id": restockID})
}

// RestocksByProduct godoc
// @Summary      Listar entradas de mercancía de un producto
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.RestockResponse
// @Router       /api/products/{id}/restocks [get]
func (h *SaleHandler) RestocksByProduct(c *fiber.Ctx) error {
	restocks, err := h.restockUC.ListByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return mapSaleError(c, err)
	}
	out := make([]*dto.RestockResponse, 0, len(restocks))
	for _, r := range restocks {
		out = append(out, &dto.RestockResponse{
			ID:            r.ID,
			ProductID:     r.ProductID,
			Quantity:      r.Quantity,
			PurchasePrice: r.PurchasePrice,
			CreatedAt:     r.CreatedAt,
		})
	}
	return c.JSON(out)
}

// HistoryByCustomer godoc
// @Summary      Historial de ventas de un cliente
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}  dto.SaleHistoryRowResponse
// @Router       /api/sales/history/customer/{id} [get]
func (h *SaleHandler) HistoryByCustomer(c *fiber.Ctx) error {
	rows, err := h.queryUC.HistoryByCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.JSON(toHistoryResponses(rows))
}

// HistoryByProduct godoc
// @Summary      Historial de ventas de un producto
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.SaleHistoryRowResponse
// @Router       /api/sales/history/product/{id} [get]
func (h *SaleHandler) HistoryByProduct(c *fiber.Ctx) error {
	rows, err := h.queryUC.HistoryByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.JSON(toHistoryResponses(rows))
}

// HistoryByPeriod godoc
// @Summary      Historial de ventas en un rango de fechas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Fecha inicial (YYYY-MM-DD)"
// @Param        to    query  string  true  "Fecha final (YYYY-MM-DD)"
// @Success      200   {array}  dto.SaleHistoryRowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/history/period [get]
func (h *SaleHandler) HistoryByPeriod(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, formato YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, formato YYYY-MM-DD"})
	}
	// to inclusivo: cubre el día completo
	rows, err := h.queryUC.HistoryByPeriod(c.Context(), from, to.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.JSON(toHistoryResponses(rows))
}

// mapSaleError traduce la taxonomía de errores del motor de ventas a HTTP:
// entrada inválida 400, producto/venta inexistente 404, stock insuficiente 409,
// falla de almacenamiento 500.
func mapSaleError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("stock insuficiente para '%s': disponible %d, solicitado %d", stockErr.ProductName, stockErr.Available, stockErr.Requested),
		})
	}
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente e ítems (cantidad > 0) son requeridos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toSaleResponse(sale *entity.Sale, customerName string, items []*entity.SaleItemView) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:           sale.ID,
		CustomerID:   sale.CustomerID,
		CustomerName: customerName,
		Date:         sale.Date,
		Total:        sale.Total,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

func toHistoryResponses(rows []*entity.SaleHistoryRow) []*dto.SaleHistoryRowResponse {
	out := make([]*dto.SaleHistoryRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.SaleHistoryRowResponse{
			SaleID:       r.SaleID,
			Date:         r.Date,
			Total:        r.Total,
			CustomerName: r.CustomerName,
			ProductName:  r.ProductName,
			Quantity:     r.Quantity,
			UnitPrice:    r.UnitPrice,
			Subtotal:     r.Subtotal,
		})
	}
	return out
}
