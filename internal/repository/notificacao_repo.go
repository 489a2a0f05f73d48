package repository

import (
	"context"

	"mrpproducao/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificacaoRepository interface {
	Create(ctx context.Context, n *model.Notificacao) error
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID, limit int) ([]model.Notificacao, error)
	CountNaoLidas(ctx context.Context, usuarioID uuid.UUID) (int64, error)
	MarcarLida(ctx context.Context, id, usuarioID uuid.UUID) error
}

type notificacaoRepo struct{ db *gorm.DB }

func NewNotificacaoRepository(db *gorm.DB) NotificacaoRepository { return &notificacaoRepo{db: db} }

func (r *notificacaoRepo) Create(ctx context.Context, n *model.Notificacao) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacaoRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID, limit int) ([]model.Notificacao, error) {
	var notificacoes []model.Notificacao
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notificacoes).Error
	return notificacoes, err
}

func (r *notificacaoRepo) CountNaoLidas(ctx context.Context, usuarioID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Notificacao{}).
		Where("usuario_id = ? AND lida = false", usuarioID).
		Count(&total).Error
	return total, err
}

func (r *notificacaoRepo) MarcarLida(ctx context.Context, id, usuarioID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Notificacao{}).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Update("lida", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
