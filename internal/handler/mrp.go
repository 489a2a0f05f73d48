package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mrpproducao/internal/service"
)

// MRPHandler exposes manual triggers for the two scheduled routines, so the
// stock check and the overdue scan can be run on demand.
type MRPHandler struct {
	reabastecimento service.ReabastecimentoService
}

func NewMRPHandler(reabastecimento service.ReabastecimentoService) *MRPHandler {
	return &MRPHandler{reabastecimento: reabastecimento}
}

// VerificarEstoque godoc
// @Summary  Run the stock check and generate automatic orders
// @Tags     mrp
// @Produce  json
// @Success  200 {object} dto.VerificacaoEstoqueResponse
// @Router   /v1/mrp/verificar-estoque [post]
func (h *MRPHandler) VerificarEstoque(c *gin.Context) {
	resp, err := h.reabastecimento.VerificarEGerarPedidos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerificarPrazos godoc
// @Summary  Run the overdue-order scan
// @Tags     mrp
// @Produce  json
// @Success  200 {object} dto.VerificacaoPrazosResponse
// @Router   /v1/mrp/verificar-prazos [post]
func (h *MRPHandler) VerificarPrazos(c *gin.Context) {
	resp, err := h.reabastecimento.VerificarAtrasados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
