package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/service"
)

type ProdutoHandler struct {
	produtos service.ProdutoService
}

func NewProdutoHandler(produtos service.ProdutoService) *ProdutoHandler {
	return &ProdutoHandler{produtos: produtos}
}

func (h *ProdutoHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.produtos.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProdutoHandler) Listar(c *gin.Context) {
	resp, err := h.produtos.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProdutoHandler) Obter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.produtos.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProdutoHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.produtos.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProdutoHandler) Excluir(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.produtos.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdicionarMaterial appends a line to the product's bill of materials.
func (h *ProdutoHandler) AdicionarMaterial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AdicionarMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.produtos.AdicionarMaterial(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProdutoHandler) ListarMateriais(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.produtos.ListarMateriais(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProdutoHandler) RemoverMaterial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	linhaID, ok := parseIDParam(c, "materialId")
	if !ok {
		return
	}
	if err := h.produtos.RemoverMaterial(c.Request.Context(), id, linhaID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
