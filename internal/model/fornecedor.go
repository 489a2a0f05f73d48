package model

import (
	"time"

	"github.com/google/uuid"
)

// Fornecedor represents a supplier with commercial data.
// PrazoEntrega (days) drives the expected delivery date of orders.
type Fornecedor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome         string    `gorm:"not null"`
	CNPJ         string    `gorm:"column:cnpj;uniqueIndex;not null"`
	Contato      *string
	Telefone     *string
	Email        *string
	Endereco     *string
	PrazoEntrega int `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Materiais []Material `gorm:"foreignKey:FornecedorID"`
}

func (Fornecedor) TableName() string { return "fornecedores" }
