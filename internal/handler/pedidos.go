package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mrpproducao/internal/apierror"
	"mrpproducao/internal/dto"
	"mrpproducao/internal/middleware"
	"mrpproducao/internal/model"
	"mrpproducao/internal/service"
)

type PedidoHandler struct {
	pedidos service.PedidoService
}

func NewPedidoHandler(pedidos service.PedidoService) *PedidoHandler {
	return &PedidoHandler{pedidos: pedidos}
}

// Criar godoc
// @Summary  Create a manual purchase order
// @Description The order number, items and total are written in one transaction.
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    body body dto.CriarPedidoRequest true "Order"
// @Success  201 {object} dto.PedidoResponse
// @Failure  422 {object} apierror.APIError
// @Router   /v1/pedidos [post]
func (h *PedidoHandler) Criar(c *gin.Context) {
	var req dto.CriarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
		return
	}
	resp, err := h.pedidos.CriarPedido(c.Request.Context(), usuarioID, model.PedidoTipoManual, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PedidoHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros de consulta invalidos"))
		return
	}
	resp, err := h.pedidos.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidoHandler) Obter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.pedidos.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarStatus godoc
// @Summary  Change an order's status
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    id   path string                     true "Order ID"
// @Param    body body dto.AtualizarStatusRequest true "New status"
// @Success  200 {object} dto.PedidoResponse
// @Failure  422 {object} apierror.APIError
// @Router   /v1/pedidos/{id}/status [patch]
func (h *PedidoHandler) AtualizarStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.pedidos.AtualizarStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidoHandler) Atrasados(c *gin.Context) {
	resp, err := h.pedidos.ListarAtrasados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF renders the printable purchase order and streams it back.
func (h *PedidoHandler) PDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	path, err := h.pedidos.GerarPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, fmt.Sprintf("pedido_%s.pdf", id))
}

// ExportarXLSX streams the filtered order list as a spreadsheet.
func (h *PedidoHandler) ExportarXLSX(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros de consulta invalidos"))
		return
	}
	f, err := h.pedidos.ExportarXLSX(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="pedidos.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
