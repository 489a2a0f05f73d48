package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido order statuses. Closed set; anything else is rejected upfront.
const (
	PedidoStatusPendente  = "pendente"
	PedidoStatusAprovado  = "aprovado"
	PedidoStatusEnviado   = "enviado"
	PedidoStatusRecebido  = "recebido"
	PedidoStatusCancelado = "cancelado"
)

// Pedido order types.
const (
	PedidoTipoManual     = "manual"
	PedidoTipoAutomatico = "automatico"
)

// Pedido is a purchase order. Created atomically with its items; after
// creation only the status changes. Never physically deleted.
type Pedido struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// NumeroPedido is the human-readable identifier PED-YYYY-NNNN,
	// allocated from pedido_sequencias inside the creation transaction.
	NumeroPedido string    `gorm:"uniqueIndex;not null"`
	FornecedorID uuid.UUID `gorm:"type:uuid;not null;index"`
	UsuarioID    uuid.UUID `gorm:"type:uuid;not null"`
	Tipo         string    `gorm:"type:varchar(20);not null;default:'manual'"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pendente';index"`
	DataPrevisao *time.Time
	ValorTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Observacoes  *string         `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Itens      []PedidoItem `gorm:"foreignKey:PedidoID"`
	Fornecedor *Fornecedor  `gorm:"foreignKey:FornecedorID"`
	Usuario    *Usuario     `gorm:"foreignKey:UsuarioID"`
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoItem is one order line. ValorTotal = Quantidade × ValorUnitario,
// persisted redundantly for audit. Immutable after creation; corrections
// require a new order.
type PedidoItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time

	Material *Material `gorm:"foreignKey:MaterialID"`
}

func (PedidoItem) TableName() string { return "pedido_itens" }

// PedidoSequencia is the per-year order number counter. The row is locked
// (SELECT ... FOR UPDATE) inside the order creation transaction so two
// concurrent creations can never compute the same number. The legacy
// "read max numero_pedido and add one" approach raced under concurrency.
type PedidoSequencia struct {
	Ano     int `gorm:"primaryKey;autoIncrement:false"`
	Proximo int `gorm:"not null;default:1"`
}

func (PedidoSequencia) TableName() string { return "pedido_sequencias" }
