package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/service"
)

type FornecedorHandler struct {
	fornecedores service.FornecedorService
}

func NewFornecedorHandler(fornecedores service.FornecedorService) *FornecedorHandler {
	return &FornecedorHandler{fornecedores: fornecedores}
}

func (h *FornecedorHandler) Criar(c *gin.Context) {
	var req dto.CriarFornecedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.fornecedores.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FornecedorHandler) Listar(c *gin.Context) {
	resp, err := h.fornecedores.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FornecedorHandler) Obter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.fornecedores.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FornecedorHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarFornecedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.fornecedores.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excluir godoc
// @Summary  Delete a supplier
// @Description Fails with code FORNECEDOR_COM_PEDIDOS when any order references the supplier.
// @Tags     fornecedores
// @Produce  json
// @Param    id path string true "Supplier ID"
// @Success  204
// @Failure  409 {object} apierror.APIError
// @Router   /v1/fornecedores/{id} [delete]
func (h *FornecedorHandler) Excluir(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.fornecedores.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
