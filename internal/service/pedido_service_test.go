package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/model"
)

type pedidoFixture struct {
	svc        PedidoService
	pedidos    *stubPedidoRepo
	fornecedor *model.Fornecedor
	material   *model.Material
	usuarioID  uuid.UUID
}

func newPedidoFixture(t *testing.T, strict bool) *pedidoFixture {
	t.Helper()
	fornecedores := newStubFornecedorRepo()
	fornecedor := fornecedores.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "11.222.333/0001-44", PrazoEntrega: 10})

	materiais := newStubMaterialRepo()
	material := materiais.add(&model.Material{Nome: "Chapa 3mm", CodigoInterno: "MAT-001", Unidade: "kg"})

	pedidos := newStubPedidoRepo()
	svc := NewPedidoService(pedidos, fornecedores, materiais, nil, t.TempDir(), strict)
	return &pedidoFixture{
		svc:        svc,
		pedidos:    pedidos,
		fornecedor: fornecedor,
		material:   material,
		usuarioID:  uuid.New(),
	}
}

func (f *pedidoFixture) request(itens ...dto.ItemPedidoRequest) dto.CriarPedidoRequest {
	return dto.CriarPedidoRequest{
		FornecedorID: f.fornecedor.ID.String(),
		Itens:        itens,
	}
}

func TestCriarPedido(t *testing.T) {
	ctx := context.Background()

	t.Run("computes item and order totals", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		resp, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request(
			dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("10"), ValorUnitario: d("2.50")},
			dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("3"), ValorUnitario: d("7")},
		))
		require.NoError(t, err)

		assert.Equal(t, model.PedidoStatusPendente, resp.Status)
		assert.Equal(t, model.PedidoTipoManual, resp.Tipo)
		assert.True(t, d("46").Equal(resp.ValorTotal), "got %s", resp.ValorTotal)
		require.Len(t, resp.Itens, 2)
		assert.True(t, d("25").Equal(resp.Itens[0].ValorTotal))
		assert.True(t, d("21").Equal(resp.Itens[1].ValorTotal))
	})

	t.Run("assigns sequential numbers within the year", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		ano := time.Now().Year()
		for i := 1; i <= 3; i++ {
			resp, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request(
				dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("1"), ValorUnitario: d("1")},
			))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("PED-%d-%04d", ano, i), resp.NumeroPedido)
		}
	})

	t.Run("defaults the delivery date to the supplier lead time", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		resp, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request(
			dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("1"), ValorUnitario: d("1")},
		))
		require.NoError(t, err)
		require.NotNil(t, resp.DataPrevisao)
		want := time.Now().AddDate(0, 0, f.fornecedor.PrazoEntrega).Format("2006-01-02")
		assert.Equal(t, want, *resp.DataPrevisao)
	})

	t.Run("stores the lead-time delivery date at midnight", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		resp, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request(
			dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("1"), ValorUnitario: d("1")},
		))
		require.NoError(t, err)

		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)
		stored := f.pedidos.pedidos[id]
		require.NotNil(t, stored.DataPrevisao)
		want := time.Now().AddDate(0, 0, f.fornecedor.PrazoEntrega)
		want = time.Date(want.Year(), want.Month(), want.Day(), 0, 0, 0, 0, want.Location())
		assert.True(t, stored.DataPrevisao.Equal(want), "got %s", stored.DataPrevisao)
	})

	t.Run("surfaces a store failure without retrying", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		f.pedidos.createErr = errors.New("connection reset")
		_, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request(
			dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("1"), ValorUnitario: d("1")},
		))
		require.Error(t, err)
		assert.Empty(t, f.pedidos.pedidos)
		assert.Equal(t, 1, f.pedidos.proximo[time.Now().Year()], "a non-duplicate failure must not retry")
	})

	t.Run("rejects an order without items", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		_, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request())
		assert.ErrorIs(t, err, ErrPedidoSemItens)
		assert.Empty(t, f.pedidos.pedidos)
	})

	t.Run("rejects a non-positive quantity and persists nothing", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		_, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request(
			dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("5"), ValorUnitario: d("1")},
			dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("0"), ValorUnitario: d("1")},
		))
		assert.ErrorIs(t, err, ErrQuantidadeInvalida)
		assert.Empty(t, f.pedidos.pedidos)
		assert.Empty(t, f.pedidos.proximo, "no order number may be consumed")
	})

	t.Run("rejects a negative unit price", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		_, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request(
			dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("1"), ValorUnitario: d("-1")},
		))
		assert.ErrorIs(t, err, ErrValorInvalido)
	})

	t.Run("rejects an unknown supplier", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		req := f.request(dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("1"), ValorUnitario: d("1")})
		req.FornecedorID = uuid.NewString()
		_, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, req)
		assert.ErrorIs(t, err, ErrFornecedorInvalido)
	})

	t.Run("rejects an unknown material", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		_, err := f.svc.CriarPedido(ctx, f.usuarioID, model.PedidoTipoManual, f.request(
			dto.ItemPedidoRequest{MaterialID: uuid.NewString(), Quantidade: d("1"), ValorUnitario: d("1")},
		))
		assert.ErrorIs(t, err, ErrMaterialInvalido)
		assert.Empty(t, f.pedidos.pedidos)
	})
}

func criarPedidoPendente(t *testing.T, f *pedidoFixture) uuid.UUID {
	t.Helper()
	resp, err := f.svc.CriarPedido(context.Background(), f.usuarioID, model.PedidoTipoManual, f.request(
		dto.ItemPedidoRequest{MaterialID: f.material.ID.String(), Quantidade: d("1"), ValorUnitario: d("1")},
	))
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	return id
}

func TestAtualizarStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an unknown status", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		id := criarPedidoPendente(t, f)
		_, err := f.svc.AtualizarStatus(ctx, id, "entregue")
		assert.ErrorIs(t, err, ErrStatusInvalido)
	})

	t.Run("permissive mode accepts any known status", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		id := criarPedidoPendente(t, f)
		resp, err := f.svc.AtualizarStatus(ctx, id, model.PedidoStatusRecebido)
		require.NoError(t, err)
		assert.Equal(t, model.PedidoStatusRecebido, resp.Status)
	})

	t.Run("strict mode follows the lifecycle", func(t *testing.T) {
		f := newPedidoFixture(t, true)
		id := criarPedidoPendente(t, f)

		_, err := f.svc.AtualizarStatus(ctx, id, model.PedidoStatusRecebido)
		assert.ErrorIs(t, err, ErrTransicaoInvalida)

		for _, status := range []string{
			model.PedidoStatusAprovado,
			model.PedidoStatusEnviado,
			model.PedidoStatusRecebido,
		} {
			resp, err := f.svc.AtualizarStatus(ctx, id, status)
			require.NoError(t, err)
			assert.Equal(t, status, resp.Status)
		}

		// recebido is terminal
		_, err = f.svc.AtualizarStatus(ctx, id, model.PedidoStatusCancelado)
		assert.ErrorIs(t, err, ErrTransicaoInvalida)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newPedidoFixture(t, false)
		_, err := f.svc.AtualizarStatus(ctx, uuid.New(), model.PedidoStatusAprovado)
		assert.ErrorIs(t, err, ErrNaoEncontrado)
	})

	t.Run("strict mode rejects a transition raced by another caller", func(t *testing.T) {
		fornecedores := newStubFornecedorRepo()
		fornecedor := fornecedores.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "11.222.333/0001-44", PrazoEntrega: 10})
		materiais := newStubMaterialRepo()
		material := materiais.add(&model.Material{Nome: "Chapa 3mm", CodigoInterno: "MAT-001", Unidade: "kg"})
		pedidos := newStubPedidoRepo()
		stale := &stalePedidoRepo{stubPedidoRepo: pedidos}
		svc := NewPedidoService(stale, fornecedores, materiais, nil, t.TempDir(), true)

		resp, err := svc.CriarPedido(ctx, uuid.New(), model.PedidoTipoManual, dto.CriarPedidoRequest{
			FornecedorID: fornecedor.ID.String(),
			Itens: []dto.ItemPedidoRequest{
				{MaterialID: material.ID.String(), Quantidade: d("1"), ValorUnitario: d("1")},
			},
		})
		require.NoError(t, err)
		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)

		_, err = svc.AtualizarStatus(ctx, id, model.PedidoStatusAprovado)
		require.NoError(t, err)

		// Reads now report the state before the transition above, as seen
		// by a caller whose find happened before the concurrent write.
		stale.staleStatus = model.PedidoStatusPendente
		_, err = svc.AtualizarStatus(ctx, id, model.PedidoStatusAprovado)
		assert.ErrorIs(t, err, ErrTransicaoInvalida)
		assert.Equal(t, model.PedidoStatusAprovado, pedidos.pedidos[id].Status)
	})
}

// stalePedidoRepo serves reads from a snapshot taken before a concurrent
// transition, reproducing the find-then-update interleaving window.
type stalePedidoRepo struct {
	*stubPedidoRepo
	staleStatus string
}

func (r *stalePedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, err := r.stubPedidoRepo.FindByID(ctx, id)
	if err != nil || r.staleStatus == "" {
		return p, err
	}
	copia := *p
	copia.Status = r.staleStatus
	return &copia, nil
}

func TestListarAtrasadosRef(t *testing.T) {
	f := newPedidoFixture(t, false)
	_, err := f.svc.ListarAtrasados(context.Background())
	require.NoError(t, err)

	agora := time.Now()
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	assert.True(t, f.pedidos.atrasadosRef.Equal(hoje),
		"overdue cutoff must be the start of the current day, got %s", f.pedidos.atrasadosRef)
}

func TestTransicaoPermitida(t *testing.T) {
	assert.True(t, TransicaoPermitida(model.PedidoStatusPendente, model.PedidoStatusAprovado))
	assert.True(t, TransicaoPermitida(model.PedidoStatusEnviado, model.PedidoStatusCancelado))
	assert.False(t, TransicaoPermitida(model.PedidoStatusPendente, model.PedidoStatusEnviado))
	assert.False(t, TransicaoPermitida(model.PedidoStatusCancelado, model.PedidoStatusPendente))
	assert.False(t, TransicaoPermitida(model.PedidoStatusRecebido, model.PedidoStatusAprovado))
}
