package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/service"
)

type MaterialHandler struct {
	materiais service.MaterialService
	estoque   service.EstoqueService
}

func NewMaterialHandler(materiais service.MaterialService, estoque service.EstoqueService) *MaterialHandler {
	return &MaterialHandler{materiais: materiais, estoque: estoque}
}

func (h *MaterialHandler) Criar(c *gin.Context) {
	var req dto.CriarMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.materiais.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MaterialHandler) Listar(c *gin.Context) {
	resp, err := h.materiais.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialHandler) Obter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.materiais.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.materiais.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialHandler) Excluir(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.materiais.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EstoqueBaixo godoc
// @Summary  List materials at or below their reorder point
// @Tags     materiais
// @Produce  json
// @Success  200 {array} dto.EstoqueBaixoResponse
// @Router   /v1/materiais/estoque-baixo [get]
func (h *MaterialHandler) EstoqueBaixo(c *gin.Context) {
	resp, err := h.estoque.ListarEstoqueBaixo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
