package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/model"
	"mrpproducao/internal/repository"
	"mrpproducao/internal/worker"
)

// ReabastecimentoService is the automatic replenishment engine. It scans for
// materials at or below their reorder point, groups them by supplier, plans
// quantities and creates one automatic purchase order per supplier. It also
// runs the read-only overdue-order scan.
type ReabastecimentoService interface {
	VerificarEGerarPedidos(ctx context.Context) (*dto.VerificacaoEstoqueResponse, error)
	VerificarAtrasados(ctx context.Context) (*dto.VerificacaoPrazosResponse, error)
}

type reabastecimentoService struct {
	materiais  repository.MaterialRepository
	produtos   repository.ProdutoRepository
	usuarios   repository.UsuarioRepository
	pedidos    PedidoService
	dispatcher *worker.Dispatcher
}

func NewReabastecimentoService(
	materiais repository.MaterialRepository,
	produtos repository.ProdutoRepository,
	usuarios repository.UsuarioRepository,
	pedidos PedidoService,
	dispatcher *worker.Dispatcher,
) ReabastecimentoService {
	return &reabastecimentoService{
		materiais:  materiais,
		produtos:   produtos,
		usuarios:   usuarios,
		pedidos:    pedidos,
		dispatcher: dispatcher,
	}
}

func (s *reabastecimentoService) VerificarEGerarPedidos(ctx context.Context) (*dto.VerificacaoEstoqueResponse, error) {
	baixos, err := s.materiais.ListEstoqueBaixo(ctx)
	if err != nil {
		return nil, fmt.Errorf("low stock snapshot: %w", err)
	}

	resumo := &dto.VerificacaoEstoqueResponse{}
	if len(baixos) == 0 {
		return resumo, nil
	}

	// Group by supplier, preserving snapshot order. Materials without a
	// supplier cannot be ordered automatically; they are counted and
	// logged so the gap stays visible.
	grupos := make(map[uuid.UUID][]*model.Material)
	var ordem []uuid.UUID
	for i := range baixos {
		m := &baixos[i]
		if m.FornecedorID == nil {
			resumo.SemFornecedor++
			log.Warn().Str("material", m.Nome).Msg("material below reorder point has no supplier, skipped")
			continue
		}
		if _, ok := grupos[*m.FornecedorID]; !ok {
			ordem = append(ordem, *m.FornecedorID)
		}
		grupos[*m.FornecedorID] = append(grupos[*m.FornecedorID], m)
	}
	if len(grupos) == 0 {
		return resumo, nil
	}

	solicitante, err := s.resolverSolicitante(ctx)
	if err != nil {
		return nil, err
	}
	if solicitante == nil {
		log.Warn().Msg("no comprador or admin user available, automatic orders skipped")
		return resumo, nil
	}

	for _, fornecedorID := range ordem {
		materiais := grupos[fornecedorID]
		req := s.montarPedido(ctx, fornecedorID, materiais)
		if len(req.Itens) == 0 {
			continue
		}
		pedido, err := s.pedidos.CriarPedido(ctx, solicitante.ID, model.PedidoTipoAutomatico, req)
		if err != nil {
			// One failed supplier must not abort the whole run.
			log.Error().Err(err).Str("fornecedor", fornecedorID.String()).Msg("automatic order failed")
			continue
		}
		resumo.PedidosCriados++
		resumo.NumerosGerados = append(resumo.NumerosGerados, pedido.NumeroPedido)
		log.Info().
			Str("numero", pedido.NumeroPedido).
			Int("itens", len(req.Itens)).
			Msg("automatic order created")
	}
	return resumo, nil
}

func (s *reabastecimentoService) montarPedido(ctx context.Context, fornecedorID uuid.UUID, materiais []*model.Material) dto.CriarPedidoRequest {
	obs := "Pedido gerado automaticamente pela verificação de estoque"
	req := dto.CriarPedidoRequest{
		FornecedorID: fornecedorID.String(),
		Observacoes:  &obs,
	}
	for _, m := range materiais {
		demanda, err := s.produtos.DemandaPorMaterial(ctx, m.ID)
		if err != nil {
			log.Error().Err(err).Str("material", m.Nome).Msg("demand lookup failed, material skipped")
			continue
		}
		quantidade := CalcularQuantidadePedido(m, demanda)
		if quantidade.IsZero() {
			continue
		}
		req.Itens = append(req.Itens, dto.ItemPedidoRequest{
			MaterialID:    m.ID.String(),
			Quantidade:    quantidade,
			ValorUnitario: m.Custo,
		})
	}
	return req
}

// resolverSolicitante picks the user automatic orders are attributed to:
// the first active comprador, or an admin when no comprador exists.
func (s *reabastecimentoService) resolverSolicitante(ctx context.Context) (*model.Usuario, error) {
	for _, tipo := range []string{model.UsuarioTipoComprador, model.UsuarioTipoAdmin} {
		usuarios, err := s.usuarios.ListByTipo(ctx, tipo)
		if err != nil {
			return nil, fmt.Errorf("resolve requester: %w", err)
		}
		if len(usuarios) > 0 {
			return &usuarios[0], nil
		}
	}
	return nil, nil
}

func (s *reabastecimentoService) VerificarAtrasados(ctx context.Context) (*dto.VerificacaoPrazosResponse, error) {
	atrasados, err := s.pedidos.ListarAtrasados(ctx)
	if err != nil {
		return nil, fmt.Errorf("overdue scan: %w", err)
	}
	resumo := &dto.VerificacaoPrazosResponse{PedidosAtrasados: len(atrasados)}
	if len(atrasados) == 0 || s.dispatcher == nil {
		return resumo, nil
	}

	err = s.dispatcher.EnqueueNotificacao(ctx, worker.NotificacaoJobPayload{
		Papel:    model.UsuarioTipoComprador,
		Titulo:   "Pedidos com entrega atrasada",
		Mensagem: fmt.Sprintf("%d pedido(s) passaram da data prevista de entrega.", len(atrasados)),
		Tipo:     model.NotificacaoTipoWarning,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to enqueue overdue notification")
	}
	return resumo, nil
}
