package service

import (
	"context"

	"github.com/shopspring/decimal"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/model"
	"mrpproducao/internal/repository"
)

// fatorSeguranca is the 10% buffer applied over downstream demand when
// planning replenishment quantities.
var fatorSeguranca = decimal.NewFromFloat(1.1)

// CalcularQuantidadePedido computes how much of a material to order.
// It takes the larger of two targets: refilling up to the stock ceiling
// (estoque_maximo - estoque_atual), or covering the downstream BOM demand
// plus a 10% safety buffer. The result is rounded up to a whole unit;
// a non-positive target yields zero.
func CalcularQuantidadePedido(m *model.Material, demanda decimal.Decimal) decimal.Decimal {
	reposicao := m.EstoqueMaximo.Sub(m.EstoqueAtual)
	cobertura := demanda.Mul(fatorSeguranca)

	alvo := reposicao
	if cobertura.GreaterThan(alvo) {
		alvo = cobertura
	}
	if !alvo.IsPositive() {
		return decimal.Zero
	}
	return alvo.Ceil()
}

// EstoqueService exposes the low-stock snapshot used by the dashboard and
// by the replenishment engine.
type EstoqueService interface {
	ListarEstoqueBaixo(ctx context.Context) ([]dto.EstoqueBaixoResponse, error)
}

type estoqueService struct {
	materiais repository.MaterialRepository
}

func NewEstoqueService(materiais repository.MaterialRepository) EstoqueService {
	return &estoqueService{materiais: materiais}
}

func (s *estoqueService) ListarEstoqueBaixo(ctx context.Context) ([]dto.EstoqueBaixoResponse, error) {
	materiais, err := s.materiais.ListEstoqueBaixo(ctx)
	if err != nil {
		return nil, err
	}
	report := make([]dto.EstoqueBaixoResponse, 0, len(materiais))
	for i := range materiais {
		m := &materiais[i]
		row := dto.EstoqueBaixoResponse{
			Material:      toMaterialResponse(m),
			SemFornecedor: m.FornecedorID == nil,
		}
		if m.Fornecedor != nil {
			row.PrazoEntrega = m.Fornecedor.PrazoEntrega
		}
		report = append(report, row)
	}
	return report, nil
}
