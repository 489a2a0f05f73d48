package model

import (
	"time"

	"github.com/google/uuid"
)

// Notificacao severities.
const (
	NotificacaoTipoInfo    = "info"
	NotificacaoTipoWarning = "warning"
	NotificacaoTipoError   = "error"
)

// Notificacao is an in-app message delivered to a single user.
// Rows are written by the notification worker, never inside the
// order-creation transaction. Read/unread state belongs to the UI.
type Notificacao struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	Titulo    string    `gorm:"not null"`
	Mensagem  string    `gorm:"type:text;not null"`
	Tipo      string    `gorm:"type:varchar(20);not null;default:'info'"`
	Lida      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (Notificacao) TableName() string { return "notificacoes" }
