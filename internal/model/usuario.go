package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario roles. "comprador" receives purchasing notifications;
// "admin" receives scheduler run reports.
const (
	UsuarioTipoAdmin     = "admin"
	UsuarioTipoComprador = "comprador"
	UsuarioTipoOperador  = "operador"
)

// Usuario stores system users with role-based access.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Tipo         string `gorm:"type:varchar(20);not null;index"`
	Ativo        bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
