package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/model"
)

func TestExcluirFornecedor(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a supplier without orders", func(t *testing.T) {
		repo := newStubFornecedorRepo()
		f := repo.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "1"})
		svc := NewFornecedorService(repo)

		require.NoError(t, svc.Excluir(ctx, f.ID))
		assert.Empty(t, repo.fornecedores)
	})

	t.Run("refuses when orders reference the supplier", func(t *testing.T) {
		repo := newStubFornecedorRepo()
		f := repo.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "1"})
		repo.pedidoCount = 3
		svc := NewFornecedorService(repo)

		err := svc.Excluir(ctx, f.ID)
		assert.ErrorIs(t, err, ErrFornecedorComPedidos)
		assert.Len(t, repo.fornecedores, 1, "supplier must remain")
	})

	t.Run("unknown supplier", func(t *testing.T) {
		svc := NewFornecedorService(newStubFornecedorRepo())
		assert.ErrorIs(t, svc.Excluir(ctx, uuid.New()), ErrNaoEncontrado)
	})
}

func TestAtualizarFornecedorParcial(t *testing.T) {
	repo := newStubFornecedorRepo()
	f := repo.add(&model.Fornecedor{Nome: "Aços Norte", CNPJ: "1", PrazoEntrega: 5})
	svc := NewFornecedorService(repo)

	prazo := 12
	resp, err := svc.Atualizar(context.Background(), f.ID, dto.AtualizarFornecedorRequest{PrazoEntrega: &prazo})
	require.NoError(t, err)

	assert.Equal(t, "Aços Norte", resp.Nome, "untouched fields keep their value")
	assert.Equal(t, 12, resp.PrazoEntrega)
}
