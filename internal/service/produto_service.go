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

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error

	// Bill of materials
	AdicionarMaterial(ctx context.Context, produtoID uuid.UUID, req dto.AdicionarMaterialRequest) (*dto.BOMItemResponse, error)
	ListarMateriais(ctx context.Context, produtoID uuid.UUID) ([]dto.BOMItemResponse, error)
	RemoverMaterial(ctx context.Context, produtoID, linhaID uuid.UUID) error
}

type produtoService struct {
	produtos  repository.ProdutoRepository
	materiais repository.MaterialRepository
}

func NewProdutoService(produtos repository.ProdutoRepository, materiais repository.MaterialRepository) ProdutoService {
	return &produtoService{produtos: produtos, materiais: materiais}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{
		Nome:          req.Nome,
		CodigoInterno: req.CodigoInterno,
		Descricao:     req.Descricao,
		PrecoVenda:    req.PrecoVenda,
	}
	if err := s.produtos.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodigoEmUso
		}
		return nil, err
	}
	resp := toProdutoResponse(p)
	return &resp, nil
}

func (s *produtoService) Obter(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.produtos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	resp := toProdutoResponse(p)
	return &resp, nil
}

func (s *produtoService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.produtos.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		data = append(data, toProdutoResponse(&produtos[i]))
	}
	return data, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.produtos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}

	if req.Nome != "" {
		p.Nome = req.Nome
	}
	if req.Descricao != nil {
		p.Descricao = req.Descricao
	}
	if req.PrecoVenda != nil {
		p.PrecoVenda = *req.PrecoVenda
	}

	p.Materiais = nil
	if err := s.produtos.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Obter(ctx, id)
}

func (s *produtoService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.produtos.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNaoEncontrado
		}
		return err
	}
	return s.produtos.Delete(ctx, id)
}

func (s *produtoService) AdicionarMaterial(ctx context.Context, produtoID uuid.UUID, req dto.AdicionarMaterialRequest) (*dto.BOMItemResponse, error) {
	if !req.Quantidade.IsPositive() {
		return nil, ErrQuantidadeInvalida
	}
	if _, err := s.produtos.FindByID(ctx, produtoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return nil, ErrMaterialInvalido
	}
	material, err := s.materiais.FindByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialInvalido
		}
		return nil, err
	}

	pm := &model.ProdutoMaterial{
		ProdutoID:  produtoID,
		MaterialID: materialID,
		Quantidade: req.Quantidade,
	}
	if err := s.produtos.AddMaterial(ctx, pm); err != nil {
		// The unique index on (produto_id, material_id) enforces one
		// line per material.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMaterialJaNoBOM
		}
		return nil, err
	}
	pm.Material = material
	resp := toBOMItemResponse(pm)
	return &resp, nil
}

func (s *produtoService) ListarMateriais(ctx context.Context, produtoID uuid.UUID) ([]dto.BOMItemResponse, error) {
	if _, err := s.produtos.FindByID(ctx, produtoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	linhas, err := s.produtos.ListMateriais(ctx, produtoID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.BOMItemResponse, 0, len(linhas))
	for i := range linhas {
		data = append(data, toBOMItemResponse(&linhas[i]))
	}
	return data, nil
}

func (s *produtoService) RemoverMaterial(ctx context.Context, produtoID, linhaID uuid.UUID) error {
	err := s.produtos.RemoveMaterial(ctx, produtoID, linhaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNaoEncontrado
	}
	return err
}

func toProdutoResponse(p *model.Produto) dto.ProdutoResponse {
	resp := dto.ProdutoResponse{
		ID:            p.ID.String(),
		Nome:          p.Nome,
		CodigoInterno: p.CodigoInterno,
		Descricao:     p.Descricao,
		PrecoVenda:    p.PrecoVenda,
	}
	for i := range p.Materiais {
		resp.Materiais = append(resp.Materiais, toBOMItemResponse(&p.Materiais[i]))
	}
	return resp
}

func toBOMItemResponse(pm *model.ProdutoMaterial) dto.BOMItemResponse {
	resp := dto.BOMItemResponse{
		ID:         pm.ID.String(),
		ProdutoID:  pm.ProdutoID.String(),
		MaterialID: pm.MaterialID.String(),
		Quantidade: pm.Quantidade,
	}
	if pm.Material != nil {
		resp.MaterialNome = pm.Material.Nome
		resp.MaterialUnidade = pm.Material.Unidade
	}
	return resp
}
