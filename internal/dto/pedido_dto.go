package dto

import "github.com/shopspring/decimal"

// ─── Pedidos ─────────────────────────────────────────────────────────────────

// ItemPedidoRequest is one order line submitted by the manual flow.
// Quantities must be strictly positive; a zero line invalidates the order.
type ItemPedidoRequest struct {
	MaterialID    string          `json:"material_id"    validate:"required,uuid"`
	Quantidade    decimal.Decimal `json:"quantidade"     validate:"required"`
	ValorUnitario decimal.Decimal `json:"valor_unitario" validate:"required"`
}

type CriarPedidoRequest struct {
	FornecedorID string              `json:"fornecedor_id" validate:"required,uuid"`
	DataPrevisao *string             `json:"data_previsao" validate:"omitempty,datetime=2006-01-02"`
	Observacoes  *string             `json:"observacoes"`
	Itens        []ItemPedidoRequest `json:"itens"         validate:"required,min=1,dive"`
}

type AtualizarStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ItemPedidoResponse struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"material_id"`
	MaterialNome  string          `json:"material_nome,omitempty"`
	Unidade       string          `json:"unidade,omitempty"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
}

type PedidoResponse struct {
	ID             string               `json:"id"`
	NumeroPedido   string               `json:"numero_pedido"`
	FornecedorID   string               `json:"fornecedor_id"`
	FornecedorNome string               `json:"fornecedor_nome,omitempty"`
	UsuarioID      string               `json:"usuario_id"`
	UsuarioNome    string               `json:"usuario_nome,omitempty"`
	Tipo           string               `json:"tipo"`
	Status         string               `json:"status"`
	DataPrevisao   *string              `json:"data_previsao,omitempty"`
	ValorTotal     decimal.Decimal      `json:"valor_total"`
	Observacoes    *string              `json:"observacoes,omitempty"`
	Itens          []ItemPedidoResponse `json:"itens,omitempty"`
	CreatedAt      string               `json:"created_at"`
}

// PedidoFilter is bound from the query string of GET /v1/pedidos.
type PedidoFilter struct {
	Status string `form:"status"`
	Tipo   string `form:"tipo"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ─── Replenishment engine ────────────────────────────────────────────────────

// VerificacaoEstoqueResponse reports one scheduler (or manual) stock-check run.
type VerificacaoEstoqueResponse struct {
	PedidosCriados int      `json:"pedidos_criados"`
	NumerosGerados []string `json:"numeros_gerados,omitempty"`
	SemFornecedor  int      `json:"sem_fornecedor"`
}

// VerificacaoPrazosResponse reports the overdue-order scan. Read-only.
type VerificacaoPrazosResponse struct {
	PedidosAtrasados int `json:"pedidos_atrasados"`
}
