package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mrpproducao/internal/model"
)

type fakeUsuarioRepo struct {
	usuarios []model.Usuario
}

func (r *fakeUsuarioRepo) Create(ctx context.Context, u *model.Usuario) error { return nil }
func (r *fakeUsuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUsuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUsuarioRepo) ListByTipo(ctx context.Context, tipo string) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Tipo == tipo {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUsuarioRepo) List(ctx context.Context) ([]model.Usuario, error)  { return r.usuarios, nil }
func (r *fakeUsuarioRepo) Update(ctx context.Context, u *model.Usuario) error { return nil }
func (r *fakeUsuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeNotificacaoRepo struct {
	criadas   []model.Notificacao
	createErr error
}

func (r *fakeNotificacaoRepo) Create(ctx context.Context, n *model.Notificacao) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.criadas = append(r.criadas, *n)
	return nil
}
func (r *fakeNotificacaoRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID, limit int) ([]model.Notificacao, error) {
	return r.criadas, nil
}
func (r *fakeNotificacaoRepo) CountNaoLidas(ctx context.Context, usuarioID uuid.UUID) (int64, error) {
	return int64(len(r.criadas)), nil
}
func (r *fakeNotificacaoRepo) MarcarLida(ctx context.Context, id, usuarioID uuid.UUID) error {
	return nil
}

func payload(t *testing.T, p NotificacaoJobPayload) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return data
}

func TestNotificacaoWorkerProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("writes one row per role member", func(t *testing.T) {
		usuarios := &fakeUsuarioRepo{usuarios: []model.Usuario{
			{ID: uuid.New(), Username: "c1", Tipo: model.UsuarioTipoComprador},
			{ID: uuid.New(), Username: "c2", Tipo: model.UsuarioTipoComprador},
			{ID: uuid.New(), Username: "op", Tipo: model.UsuarioTipoOperador},
		}}
		notificacoes := &fakeNotificacaoRepo{}
		w := NewNotificacaoWorker(usuarios, notificacoes, nil, nil)

		err := w.Process(ctx, payload(t, NotificacaoJobPayload{
			Papel:    model.UsuarioTipoComprador,
			Titulo:   "Novo pedido automático",
			Mensagem: "O pedido PED-2025-0001 foi gerado.",
			Tipo:     model.NotificacaoTipoWarning,
		}))
		require.NoError(t, err)
		require.Len(t, notificacoes.criadas, 2, "only compradores are notified")
		assert.Equal(t, "Novo pedido automático", notificacoes.criadas[0].Titulo)
		assert.Equal(t, model.NotificacaoTipoWarning, notificacoes.criadas[0].Tipo)
		assert.False(t, notificacoes.criadas[0].Lida)
	})

	t.Run("role with no members completes without error", func(t *testing.T) {
		notificacoes := &fakeNotificacaoRepo{}
		w := NewNotificacaoWorker(&fakeUsuarioRepo{}, notificacoes, nil, nil)

		err := w.Process(ctx, payload(t, NotificacaoJobPayload{
			Papel: model.UsuarioTipoAdmin, Titulo: "x", Mensagem: "y", Tipo: model.NotificacaoTipoInfo,
		}))
		require.NoError(t, err)
		assert.Empty(t, notificacoes.criadas)
	})

	t.Run("all inserts failing surfaces an error for retry", func(t *testing.T) {
		usuarios := &fakeUsuarioRepo{usuarios: []model.Usuario{
			{ID: uuid.New(), Username: "a", Tipo: model.UsuarioTipoAdmin},
		}}
		notificacoes := &fakeNotificacaoRepo{createErr: errors.New("db down")}
		w := NewNotificacaoWorker(usuarios, notificacoes, nil, nil)

		err := w.Process(ctx, payload(t, NotificacaoJobPayload{
			Papel: model.UsuarioTipoAdmin, Titulo: "x", Mensagem: "y", Tipo: model.NotificacaoTipoInfo,
		}))
		assert.Error(t, err)
	})

	t.Run("malformed payload", func(t *testing.T) {
		w := NewNotificacaoWorker(&fakeUsuarioRepo{}, &fakeNotificacaoRepo{}, nil, nil)
		assert.Error(t, w.Process(ctx, json.RawMessage(`{`)))
	})
}
