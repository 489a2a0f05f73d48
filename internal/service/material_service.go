package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/model"
	"mrpproducao/internal/repository"
)

type MaterialService interface {
	Criar(ctx context.Context, req dto.CriarMaterialRequest) (*dto.MaterialResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	Listar(ctx context.Context) ([]dto.MaterialResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarMaterialRequest) (*dto.MaterialResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type materialService struct {
	materiais    repository.MaterialRepository
	fornecedores repository.FornecedorRepository
}

func NewMaterialService(materiais repository.MaterialRepository, fornecedores repository.FornecedorRepository) MaterialService {
	return &materialService{materiais: materiais, fornecedores: fornecedores}
}

func (s *materialService) Criar(ctx context.Context, req dto.CriarMaterialRequest) (*dto.MaterialResponse, error) {
	if req.EstoqueMinimo.GreaterThan(req.EstoqueMaximo) {
		return nil, ErrEstoqueMinMax
	}
	fornecedorID, err := s.resolverFornecedor(ctx, req.FornecedorID)
	if err != nil {
		return nil, err
	}

	m := &model.Material{
		Nome:          req.Nome,
		CodigoInterno: req.CodigoInterno,
		Descricao:     req.Descricao,
		Unidade:       req.Unidade,
		EstoqueAtual:  req.EstoqueAtual,
		EstoqueMinimo: req.EstoqueMinimo,
		EstoqueMaximo: req.EstoqueMaximo,
		LeadTime:      req.LeadTime,
		Custo:         req.Custo,
		FornecedorID:  fornecedorID,
	}
	if err := s.materiais.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodigoEmUso
		}
		return nil, err
	}
	return s.Obter(ctx, m.ID)
}

func (s *materialService) Obter(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.materiais.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	resp := toMaterialResponse(m)
	return &resp, nil
}

func (s *materialService) Listar(ctx context.Context) ([]dto.MaterialResponse, error) {
	materiais, err := s.materiais.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MaterialResponse, 0, len(materiais))
	for i := range materiais {
		data = append(data, toMaterialResponse(&materiais[i]))
	}
	return data, nil
}

func (s *materialService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.materiais.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}

	if req.Nome != "" {
		m.Nome = req.Nome
	}
	if req.Descricao != nil {
		m.Descricao = req.Descricao
	}
	if req.Unidade != "" {
		m.Unidade = req.Unidade
	}
	if req.EstoqueAtual != nil {
		m.EstoqueAtual = *req.EstoqueAtual
	}
	if req.EstoqueMinimo != nil {
		m.EstoqueMinimo = *req.EstoqueMinimo
	}
	if req.EstoqueMaximo != nil {
		m.EstoqueMaximo = *req.EstoqueMaximo
	}
	if req.LeadTime != nil {
		m.LeadTime = *req.LeadTime
	}
	if req.Custo != nil {
		m.Custo = *req.Custo
	}
	if req.FornecedorID != nil {
		fornecedorID, err := s.resolverFornecedor(ctx, req.FornecedorID)
		if err != nil {
			return nil, err
		}
		m.FornecedorID = fornecedorID
	}

	// The check covers the post-merge thresholds, so a partial update
	// cannot sneak an inverted pair in.
	if m.EstoqueMinimo.GreaterThan(m.EstoqueMaximo) {
		return nil, ErrEstoqueMinMax
	}

	m.Fornecedor = nil
	if err := s.materiais.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.Obter(ctx, id)
}

func (s *materialService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.materiais.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNaoEncontrado
		}
		return err
	}
	return s.materiais.Delete(ctx, id)
}

func (s *materialService) resolverFornecedor(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, ErrFornecedorInvalido
	}
	if _, err := s.fornecedores.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFornecedorInvalido
		}
		return nil, err
	}
	return &id, nil
}

func toMaterialResponse(m *model.Material) dto.MaterialResponse {
	resp := dto.MaterialResponse{
		ID:            m.ID.String(),
		Nome:          m.Nome,
		CodigoInterno: m.CodigoInterno,
		Descricao:     m.Descricao,
		Unidade:       m.Unidade,
		EstoqueAtual:  m.EstoqueAtual,
		EstoqueMinimo: m.EstoqueMinimo,
		EstoqueMaximo: m.EstoqueMaximo,
		LeadTime:      m.LeadTime,
		Custo:         m.Custo,
	}
	if m.FornecedorID != nil {
		id := m.FornecedorID.String()
		resp.FornecedorID = &id
	}
	if m.Fornecedor != nil {
		resp.FornecedorNome = m.Fornecedor.Nome
	}
	return resp
}
