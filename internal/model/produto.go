package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a finished good assembled from materials.
type Produto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome          string    `gorm:"index;not null"`
	CodigoInterno string    `gorm:"uniqueIndex;not null"`
	Descricao     *string
	PrecoVenda    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Materiais []ProdutoMaterial `gorm:"foreignKey:ProdutoID"`
}

func (Produto) TableName() string { return "produtos" }

// ProdutoMaterial is one bill-of-materials line: how much of a material
// one unit of the product consumes. Lookup only; no ownership of the material.
type ProdutoMaterial struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_produto_material"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_produto_material"`
	Quantidade decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt  time.Time

	Material *Material `gorm:"foreignKey:MaterialID"`
}

func (ProdutoMaterial) TableName() string { return "produto_materiais" }
