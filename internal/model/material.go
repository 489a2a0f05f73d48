package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a purchasable raw material tracked by the replenishment engine.
// EstoqueMinimo is the reorder point; EstoqueMaximo the target ceiling.
type Material struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome          string    `gorm:"index;not null"`
	CodigoInterno string    `gorm:"uniqueIndex;not null"`
	Descricao     *string
	Unidade       string          `gorm:"not null;default:'un'"`
	EstoqueAtual  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	EstoqueMinimo decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	EstoqueMaximo decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	// LeadTime is the material-level estimate in days; the supplier's
	// PrazoEntrega wins when computing order delivery dates.
	LeadTime     int             `gorm:"not null;default:0"`
	Custo        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FornecedorID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

func (Material) TableName() string { return "materiais" }
