package dto

import "github.com/shopspring/decimal"

// ─── Produtos / BOM ──────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome          string          `json:"nome"           validate:"required"`
	CodigoInterno string          `json:"codigo_interno" validate:"required"`
	Descricao     *string         `json:"descricao"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"    validate:"min=0"`
}

type AtualizarProdutoRequest struct {
	Nome       string           `json:"nome"`
	Descricao  *string          `json:"descricao"`
	PrecoVenda *decimal.Decimal `json:"preco_venda" validate:"omitempty"`
}

type ProdutoResponse struct {
	ID            string            `json:"id"`
	Nome          string            `json:"nome"`
	CodigoInterno string            `json:"codigo_interno"`
	Descricao     *string           `json:"descricao,omitempty"`
	PrecoVenda    decimal.Decimal   `json:"preco_venda"`
	Materiais     []BOMItemResponse `json:"materiais,omitempty"`
}

// AdicionarMaterialRequest appends one line to a product's bill of materials.
type AdicionarMaterialRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid"`
	Quantidade decimal.Decimal `json:"quantidade"  validate:"required"`
}

type BOMItemResponse struct {
	ID              string          `json:"id"`
	ProdutoID       string          `json:"produto_id"`
	MaterialID      string          `json:"material_id"`
	MaterialNome    string          `json:"material_nome"`
	MaterialUnidade string          `json:"material_unidade"`
	Quantidade      decimal.Decimal `json:"quantidade"`
}
