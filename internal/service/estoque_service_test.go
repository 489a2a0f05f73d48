package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrpproducao/internal/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalcularQuantidadePedido(t *testing.T) {
	tests := []struct {
		name    string
		atual   string
		maximo  string
		demanda string
		want    string
	}{
		{"refill to ceiling wins", "5", "50", "10", "45"},
		{"demand plus buffer wins", "5", "50", "100", "110"},
		{"at ceiling with no demand", "50", "50", "0", "0"},
		{"above ceiling with no demand", "60", "50", "0", "0"},
		{"above ceiling but demand remains", "60", "50", "20", "22"},
		{"fractional target rounds up", "0", "0", "3.5", "4"},
		{"fractional refill rounds up", "2.2", "10", "0", "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &model.Material{
				EstoqueAtual:  d(tt.atual),
				EstoqueMaximo: d(tt.maximo),
			}
			got := CalcularQuantidadePedido(m, d(tt.demanda))
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestListarEstoqueBaixo(t *testing.T) {
	fornecedor := &model.Fornecedor{Nome: "Aços Norte", PrazoEntrega: 7}
	materiais := newStubMaterialRepo()
	comFornecedor := materiais.add(&model.Material{
		Nome: "Chapa", EstoqueAtual: d("1"), EstoqueMinimo: d("5"),
		Fornecedor: fornecedor,
	})
	id := fornecedor.ID
	comFornecedor.FornecedorID = &id
	semFornecedor := materiais.add(&model.Material{
		Nome: "Parafuso", EstoqueAtual: d("0"), EstoqueMinimo: d("10"),
	})
	materiais.baixos = []model.Material{*comFornecedor, *semFornecedor}

	svc := NewEstoqueService(materiais)
	report, err := svc.ListarEstoqueBaixo(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)

	assert.False(t, report[0].SemFornecedor)
	assert.Equal(t, 7, report[0].PrazoEntrega)
	assert.True(t, report[1].SemFornecedor)
	assert.Zero(t, report[1].PrazoEntrega)
}
