package dto

import "github.com/shopspring/decimal"

// ─── Materiais ───────────────────────────────────────────────────────────────

// CriarMaterialRequest creates a raw material. EstoqueMinimo must not exceed
// EstoqueMaximo; the legacy system accepted inverted thresholds and the
// planner then produced negative targets; the service rejects them upfront.
type CriarMaterialRequest struct {
	Nome          string          `json:"nome"           validate:"required"`
	CodigoInterno string          `json:"codigo_interno" validate:"required"`
	Descricao     *string         `json:"descricao"`
	Unidade       string          `json:"unidade"        validate:"required"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"  validate:"min=0"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo" validate:"min=0"`
	EstoqueMaximo decimal.Decimal `json:"estoque_maximo" validate:"min=0"`
	LeadTime      int             `json:"lead_time"      validate:"min=0"`
	Custo         decimal.Decimal `json:"custo"          validate:"min=0"`
	FornecedorID  *string         `json:"fornecedor_id"  validate:"omitempty,uuid"`
}

type AtualizarMaterialRequest struct {
	Nome          string           `json:"nome"`
	Descricao     *string          `json:"descricao"`
	Unidade       string           `json:"unidade"`
	EstoqueAtual  *decimal.Decimal `json:"estoque_atual"  validate:"omitempty"`
	EstoqueMinimo *decimal.Decimal `json:"estoque_minimo" validate:"omitempty"`
	EstoqueMaximo *decimal.Decimal `json:"estoque_maximo" validate:"omitempty"`
	LeadTime      *int             `json:"lead_time"      validate:"omitempty,min=0"`
	Custo         *decimal.Decimal `json:"custo"          validate:"omitempty"`
	FornecedorID  *string          `json:"fornecedor_id"  validate:"omitempty,uuid"`
}

type MaterialResponse struct {
	ID             string          `json:"id"`
	Nome           string          `json:"nome"`
	CodigoInterno  string          `json:"codigo_interno"`
	Descricao      *string         `json:"descricao,omitempty"`
	Unidade        string          `json:"unidade"`
	EstoqueAtual   decimal.Decimal `json:"estoque_atual"`
	EstoqueMinimo  decimal.Decimal `json:"estoque_minimo"`
	EstoqueMaximo  decimal.Decimal `json:"estoque_maximo"`
	LeadTime       int             `json:"lead_time"`
	Custo          decimal.Decimal `json:"custo"`
	FornecedorID   *string         `json:"fornecedor_id,omitempty"`
	FornecedorNome string          `json:"fornecedor_nome,omitempty"`
}

// EstoqueBaixoResponse is one row of the low-stock report: a material at or
// below its reorder point, annotated with its supplier's lead time.
type EstoqueBaixoResponse struct {
	Material      MaterialResponse `json:"material"`
	PrazoEntrega  int              `json:"prazo_entrega"`
	SemFornecedor bool             `json:"sem_fornecedor"`
}
