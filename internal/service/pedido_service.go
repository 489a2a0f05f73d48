package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/infra"
	"mrpproducao/internal/model"
	"mrpproducao/internal/repository"
	"mrpproducao/internal/worker"
)

// PedidoService owns the purchase-order lifecycle: atomic creation with a
// unique sequential number, status changes, queries and document export.
type PedidoService interface {
	// CriarPedido creates an order and its items in a single transaction.
	// tipo distinguishes manual orders from the ones generated by the
	// replenishment engine. Nothing is persisted when any step fails.
	CriarPedido(ctx context.Context, usuarioID uuid.UUID, tipo string, req dto.CriarPedidoRequest) (*dto.PedidoResponse, error)
	AtualizarStatus(ctx context.Context, id uuid.UUID, status string) (*dto.PedidoResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	ListarAtrasados(ctx context.Context) ([]dto.PedidoResponse, error)
	// GerarPDF renders the printable purchase order and returns the file path.
	GerarPDF(ctx context.Context, id uuid.UUID) (string, error)
	// ExportarXLSX builds a spreadsheet of the filtered orders.
	ExportarXLSX(ctx context.Context, filter dto.PedidoFilter) (*excelize.File, error)
}

type pedidoService struct {
	pedidos      repository.PedidoRepository
	fornecedores repository.FornecedorRepository
	materiais    repository.MaterialRepository
	dispatcher   *worker.Dispatcher
	pdfPath      string
	statusStrict bool
	now          func() time.Time
}

func NewPedidoService(
	pedidos repository.PedidoRepository,
	fornecedores repository.FornecedorRepository,
	materiais repository.MaterialRepository,
	dispatcher *worker.Dispatcher,
	pdfPath string,
	statusStrict bool,
) PedidoService {
	return &pedidoService{
		pedidos:      pedidos,
		fornecedores: fornecedores,
		materiais:    materiais,
		dispatcher:   dispatcher,
		pdfPath:      pdfPath,
		statusStrict: statusStrict,
		now:          time.Now,
	}
}

// runTx wraps fn in a database transaction. Unit tests use repositories with
// a nil DB, in which case fn runs without transactional semantics.
func (s *pedidoService) runTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := s.pedidos.DB()
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *pedidoService) CriarPedido(ctx context.Context, usuarioID uuid.UUID, tipo string, req dto.CriarPedidoRequest) (*dto.PedidoResponse, error) {
	if len(req.Itens) == 0 {
		return nil, ErrPedidoSemItens
	}
	for _, item := range req.Itens {
		if !item.Quantidade.IsPositive() {
			return nil, ErrQuantidadeInvalida
		}
		if item.ValorUnitario.IsNegative() {
			return nil, ErrValorInvalido
		}
	}

	fornecedorID, err := uuid.Parse(req.FornecedorID)
	if err != nil {
		return nil, ErrFornecedorInvalido
	}
	fornecedor, err := s.fornecedores.FindByID(ctx, fornecedorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFornecedorInvalido
		}
		return nil, err
	}

	itens := make([]model.PedidoItem, 0, len(req.Itens))
	total := decimal.Zero
	for _, item := range req.Itens {
		materialID, err := uuid.Parse(item.MaterialID)
		if err != nil {
			return nil, ErrMaterialInvalido
		}
		if _, err := s.materiais.FindByID(ctx, materialID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMaterialInvalido
			}
			return nil, err
		}
		valorItem := item.Quantidade.Mul(item.ValorUnitario)
		itens = append(itens, model.PedidoItem{
			MaterialID:    materialID,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorTotal:    valorItem,
		})
		total = total.Add(valorItem)
	}

	dataPrevisao, err := s.resolverDataPrevisao(req.DataPrevisao, fornecedor.PrazoEntrega)
	if err != nil {
		return nil, err
	}

	pedido := &model.Pedido{
		FornecedorID: fornecedorID,
		UsuarioID:    usuarioID,
		Tipo:         tipo,
		Status:       model.PedidoStatusPendente,
		DataPrevisao: dataPrevisao,
		ValorTotal:   total,
		Observacoes:  req.Observacoes,
		Itens:        itens,
	}

	// A duplicate order number cannot happen while the counter row is
	// locked, but a concurrent insert bypassing the sequence would
	// surface here. One retry reallocates a fresh number.
	for attempt := 0; ; attempt++ {
		err = s.runTx(ctx, func(tx *gorm.DB) error {
			numero, err := s.pedidos.NextNumeroPedidoTx(ctx, tx, s.now().Year())
			if err != nil {
				return fmt.Errorf("allocate order number: %w", err)
			}
			pedido.NumeroPedido = numero
			return s.pedidos.Create(ctx, tx, pedido)
		})
		if err == nil {
			break
		}
		if attempt == 0 && errors.Is(err, gorm.ErrDuplicatedKey) {
			pedido.ID = uuid.Nil
			continue
		}
		return nil, err
	}

	if tipo == model.PedidoTipoAutomatico {
		s.notificarCompradores(ctx, pedido)
	}

	return s.Obter(ctx, pedido.ID)
}

func (s *pedidoService) resolverDataPrevisao(raw *string, prazoEntrega int) (*time.Time, error) {
	if raw != nil && *raw != "" {
		t, err := time.Parse("2006-01-02", *raw)
		if err != nil {
			return nil, fmt.Errorf("parse data_previsao: %w", err)
		}
		return &t, nil
	}
	if prazoEntrega <= 0 {
		return nil, nil
	}
	// Midnight, same as a client-supplied date, so both creation paths age
	// on whole-day boundaries.
	t := inicioDoDia(s.now().AddDate(0, 0, prazoEntrega))
	return &t, nil
}

// inicioDoDia truncates t to local midnight.
func inicioDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// notificarCompradores is fire-and-forget: the order is already committed
// and a queue outage must not fail the request.
func (s *pedidoService) notificarCompradores(ctx context.Context, p *model.Pedido) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.EnqueueNotificacao(ctx, worker.NotificacaoJobPayload{
		Papel:    model.UsuarioTipoComprador,
		Titulo:   "Novo pedido automático",
		Mensagem: fmt.Sprintf("O pedido %s foi gerado automaticamente pela verificação de estoque.", p.NumeroPedido),
		Tipo:     model.NotificacaoTipoWarning,
	})
	if err != nil {
		log.Error().Err(err).Str("pedido", p.NumeroPedido).Msg("failed to enqueue order notification")
	}
}

func (s *pedidoService) AtualizarStatus(ctx context.Context, id uuid.UUID, status string) (*dto.PedidoResponse, error) {
	if !StatusValido(status) {
		return nil, ErrStatusInvalido
	}

	pedido, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}

	if s.statusStrict {
		if !TransicaoPermitida(pedido.Status, status) {
			return nil, ErrTransicaoInvalida
		}
		// Guarded update: a concurrent transition between the read above
		// and this write leaves zero rows matched instead of jumping the
		// lifecycle graph.
		ok, err := s.pedidos.UpdateStatusFrom(ctx, id, pedido.Status, status)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrTransicaoInvalida
		}
		return s.Obter(ctx, id)
	}

	if err := s.pedidos.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return s.Obter(ctx, id)
}

func (s *pedidoService) Obter(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	resp := toPedidoResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pedidos, total, err := s.pedidos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		data = append(data, toPedidoResponse(&pedidos[i]))
	}
	return &dto.PedidoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *pedidoService) ListarAtrasados(ctx context.Context) ([]dto.PedidoResponse, error) {
	// Day granularity: an order due today is not overdue until tomorrow.
	pedidos, err := s.pedidos.ListAtrasados(ctx, inicioDoDia(s.now()))
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		data = append(data, toPedidoResponse(&pedidos[i]))
	}
	return data, nil
}

func (s *pedidoService) GerarPDF(ctx context.Context, id uuid.UUID) (string, error) {
	pedido, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNaoEncontrado
		}
		return "", err
	}
	return infra.GeneratePedidoPDF(pedido, s.pdfPath)
}

func (s *pedidoService) ExportarXLSX(ctx context.Context, filter dto.PedidoFilter) (*excelize.File, error) {
	filter.Page = 1
	filter.Limit = 200
	pedidos, _, err := s.pedidos.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Pedidos"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Número", "Fornecedor", "Tipo", "Status", "Data Previsão", "Valor Total", "Criado em"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, p := range pedidos {
		fornecedor := ""
		if p.Fornecedor != nil {
			fornecedor = p.Fornecedor.Nome
		}
		previsao := ""
		if p.DataPrevisao != nil {
			previsao = p.DataPrevisao.Format("2006-01-02")
		}
		valorTotal, _ := p.ValorTotal.Float64()
		values := []interface{}{
			p.NumeroPedido,
			fornecedor,
			p.Tipo,
			p.Status,
			previsao,
			valorTotal,
			p.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}

func toPedidoResponse(p *model.Pedido) dto.PedidoResponse {
	resp := dto.PedidoResponse{
		ID:           p.ID.String(),
		NumeroPedido: p.NumeroPedido,
		FornecedorID: p.FornecedorID.String(),
		UsuarioID:    p.UsuarioID.String(),
		Tipo:         p.Tipo,
		Status:       p.Status,
		ValorTotal:   p.ValorTotal,
		Observacoes:  p.Observacoes,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.Fornecedor != nil {
		resp.FornecedorNome = p.Fornecedor.Nome
	}
	if p.Usuario != nil {
		resp.UsuarioNome = p.Usuario.Nome
	}
	if p.DataPrevisao != nil {
		d := p.DataPrevisao.Format("2006-01-02")
		resp.DataPrevisao = &d
	}
	for _, item := range p.Itens {
		ir := dto.ItemPedidoResponse{
			ID:            item.ID.String(),
			MaterialID:    item.MaterialID.String(),
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorTotal:    item.ValorTotal,
		}
		if item.Material != nil {
			ir.MaterialNome = item.Material.Nome
			ir.Unidade = item.Material.Unidade
		}
		resp.Itens = append(resp.Itens, ir)
	}
	return resp
}
