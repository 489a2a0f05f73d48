package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/repository"
)

// NotificacaoService reads a user's notification feed. Writes happen in the
// notification worker, not here.
type NotificacaoService interface {
	Listar(ctx context.Context, usuarioID uuid.UUID, limit int) (*dto.NotificacaoListResponse, error)
	MarcarLida(ctx context.Context, id, usuarioID uuid.UUID) error
}

type notificacaoService struct {
	notificacoes repository.NotificacaoRepository
}

func NewNotificacaoService(notificacoes repository.NotificacaoRepository) NotificacaoService {
	return &notificacaoService{notificacoes: notificacoes}
}

func (s *notificacaoService) Listar(ctx context.Context, usuarioID uuid.UUID, limit int) (*dto.NotificacaoListResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	notificacoes, err := s.notificacoes.ListByUsuario(ctx, usuarioID, limit)
	if err != nil {
		return nil, err
	}
	naoLidas, err := s.notificacoes.CountNaoLidas(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificacaoListResponse{NaoLidas: naoLidas, Data: make([]dto.NotificacaoResponse, 0, len(notificacoes))}
	for _, n := range notificacoes {
		resp.Data = append(resp.Data, dto.NotificacaoResponse{
			ID:        n.ID.String(),
			Titulo:    n.Titulo,
			Mensagem:  n.Mensagem,
			Tipo:      n.Tipo,
			Lida:      n.Lida,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// MarcarLida is scoped to the owner: a user can only mark their own
// notifications.
func (s *notificacaoService) MarcarLida(ctx context.Context, id, usuarioID uuid.UUID) error {
	err := s.notificacoes.MarcarLida(ctx, id, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNaoEncontrado
	}
	return err
}
