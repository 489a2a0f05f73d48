package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrpproducao/internal/model"
)

type reabFixture struct {
	svc          ReabastecimentoService
	pedidos      *stubPedidoRepo
	materiais    *stubMaterialRepo
	fornecedores *stubFornecedorRepo
	produtos     *stubProdutoRepo
	usuarios     *stubUsuarioRepo
}

func newReabFixture(t *testing.T) *reabFixture {
	t.Helper()
	materiais := newStubMaterialRepo()
	fornecedores := newStubFornecedorRepo()
	produtos := newStubProdutoRepo()
	usuarios := &stubUsuarioRepo{}
	pedidos := newStubPedidoRepo()

	pedidoSvc := NewPedidoService(pedidos, fornecedores, materiais, nil, t.TempDir(), false)
	svc := NewReabastecimentoService(materiais, produtos, usuarios, pedidoSvc, nil)
	return &reabFixture{
		svc:          svc,
		pedidos:      pedidos,
		materiais:    materiais,
		fornecedores: fornecedores,
		produtos:     produtos,
		usuarios:     usuarios,
	}
}

func (f *reabFixture) addComprador() {
	_ = f.usuarios.Create(context.Background(), &model.Usuario{
		Username: "comprador", Nome: "Comprador", Tipo: model.UsuarioTipoComprador, Ativo: true,
	})
}

// lowMaterial registers a material below its reorder point and returns it.
func (f *reabFixture) lowMaterial(nome string, fornecedor *model.Fornecedor, atual, minimo, maximo, custo string) *model.Material {
	m := f.materiais.add(&model.Material{
		Nome:          nome,
		CodigoInterno: nome,
		EstoqueAtual:  d(atual),
		EstoqueMinimo: d(minimo),
		EstoqueMaximo: d(maximo),
		Custo:         d(custo),
	})
	if fornecedor != nil {
		id := fornecedor.ID
		m.FornecedorID = &id
		m.Fornecedor = fornecedor
	}
	f.materiais.baixos = append(f.materiais.baixos, *m)
	return m
}

func TestVerificarEGerarPedidos(t *testing.T) {
	ctx := context.Background()

	t.Run("groups materials by supplier into one order each", func(t *testing.T) {
		f := newReabFixture(t)
		f.addComprador()
		fornA := f.fornecedores.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "1", PrazoEntrega: 5})
		fornB := f.fornecedores.add(&model.Fornecedor{Nome: "Parafusos Sul", CNPJ: "2", PrazoEntrega: 3})

		f.lowMaterial("chapa", fornA, "5", "20", "50", "2.50")
		f.lowMaterial("barra", fornA, "0", "10", "30", "4")
		f.lowMaterial("parafuso", fornB, "10", "100", "500", "0.10")

		resumo, err := f.svc.VerificarEGerarPedidos(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, resumo.PedidosCriados)
		assert.Equal(t, 0, resumo.SemFornecedor)
		require.Len(t, resumo.NumerosGerados, 2)
		require.Len(t, f.pedidos.pedidos, 2)

		for _, p := range f.pedidos.pedidos {
			assert.Equal(t, model.PedidoTipoAutomatico, p.Tipo)
			assert.Equal(t, model.PedidoStatusPendente, p.Status)
			require.NotNil(t, p.DataPrevisao)
			if p.FornecedorID == fornA.ID {
				assert.Len(t, p.Itens, 2)
				// 45 * 2.50 + 30 * 4 = 232.50
				assert.True(t, d("232.50").Equal(p.ValorTotal), "got %s", p.ValorTotal)
			} else {
				assert.Len(t, p.Itens, 1)
				assert.True(t, d("49").Equal(p.ValorTotal), "490 units at 0.10, got %s", p.ValorTotal)
			}
		}
	})

	t.Run("materials without a supplier are counted and skipped", func(t *testing.T) {
		f := newReabFixture(t)
		f.addComprador()
		forn := f.fornecedores.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "1"})
		f.lowMaterial("chapa", forn, "5", "20", "50", "1")
		f.lowMaterial("orfao", nil, "0", "10", "30", "1")

		resumo, err := f.svc.VerificarEGerarPedidos(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, resumo.PedidosCriados)
		assert.Equal(t, 1, resumo.SemFornecedor)
	})

	t.Run("demand buffer raises the planned quantity", func(t *testing.T) {
		f := newReabFixture(t)
		f.addComprador()
		forn := f.fornecedores.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "1"})
		m := f.lowMaterial("chapa", forn, "5", "20", "50", "1")
		f.produtos.demanda[m.ID] = d("100") // 110 > 45

		resumo, err := f.svc.VerificarEGerarPedidos(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, resumo.PedidosCriados)
		for _, p := range f.pedidos.pedidos {
			require.Len(t, p.Itens, 1)
			assert.True(t, d("110").Equal(p.Itens[0].Quantidade), "got %s", p.Itens[0].Quantidade)
		}
	})

	t.Run("nothing below the reorder point", func(t *testing.T) {
		f := newReabFixture(t)
		f.addComprador()
		resumo, err := f.svc.VerificarEGerarPedidos(ctx)
		require.NoError(t, err)
		assert.Zero(t, resumo.PedidosCriados)
		assert.Empty(t, f.pedidos.pedidos)
	})

	t.Run("no comprador or admin skips order creation", func(t *testing.T) {
		f := newReabFixture(t)
		forn := f.fornecedores.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "1"})
		f.lowMaterial("chapa", forn, "5", "20", "50", "1")

		resumo, err := f.svc.VerificarEGerarPedidos(ctx)
		require.NoError(t, err)
		assert.Zero(t, resumo.PedidosCriados)
		assert.Empty(t, f.pedidos.pedidos)
	})

	t.Run("falls back to an admin requester", func(t *testing.T) {
		f := newReabFixture(t)
		admin := model.Usuario{Username: "admin", Nome: "Admin", Tipo: model.UsuarioTipoAdmin, Ativo: true}
		require.NoError(t, f.usuarios.Create(ctx, &admin))
		forn := f.fornecedores.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "1"})
		f.lowMaterial("chapa", forn, "5", "20", "50", "1")

		resumo, err := f.svc.VerificarEGerarPedidos(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, resumo.PedidosCriados)
		for _, p := range f.pedidos.pedidos {
			assert.Equal(t, f.usuarios.usuarios[0].ID, p.UsuarioID)
		}
	})
}

func TestVerificarAtrasados(t *testing.T) {
	f := newReabFixture(t)
	resumo, err := f.svc.VerificarAtrasados(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resumo.PedidosAtrasados)

	ontem := time.Now().AddDate(0, 0, -1)
	f.pedidos.atrasados = []model.Pedido{
		{NumeroPedido: "PED-2025-0001", Status: model.PedidoStatusEnviado, DataPrevisao: &ontem},
		{NumeroPedido: "PED-2025-0002", Status: model.PedidoStatusPendente, DataPrevisao: &ontem},
	}
	resumo, err = f.svc.VerificarAtrasados(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resumo.PedidosAtrasados)
}
