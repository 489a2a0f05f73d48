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

type FornecedorService interface {
	Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error)
	Listar(ctx context.Context) ([]dto.FornecedorResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFornecedorRequest) (*dto.FornecedorResponse, error)
	// Excluir refuses to delete a supplier referenced by any order,
	// regardless of the order's status.
	Excluir(ctx context.Context, id uuid.UUID) error
}

type fornecedorService struct {
	fornecedores repository.FornecedorRepository
}

func NewFornecedorService(fornecedores repository.FornecedorRepository) FornecedorService {
	return &fornecedorService{fornecedores: fornecedores}
}

func (s *fornecedorService) Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f := &model.Fornecedor{
		Nome:         req.Nome,
		CNPJ:         req.CNPJ,
		Contato:      req.Contato,
		Telefone:     req.Telefone,
		Email:        req.Email,
		Endereco:     req.Endereco,
		PrazoEntrega: req.PrazoEntrega,
	}
	if err := s.fornecedores.Create(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCNPJEmUso
		}
		return nil, err
	}
	resp := toFornecedorResponse(f)
	return &resp, nil
}

func (s *fornecedorService) Obter(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error) {
	f, err := s.fornecedores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	resp := toFornecedorResponse(f)
	return &resp, nil
}

func (s *fornecedorService) Listar(ctx context.Context) ([]dto.FornecedorResponse, error) {
	fornecedores, err := s.fornecedores.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.FornecedorResponse, 0, len(fornecedores))
	for i := range fornecedores {
		data = append(data, toFornecedorResponse(&fornecedores[i]))
	}
	return data, nil
}

func (s *fornecedorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f, err := s.fornecedores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}

	if req.Nome != "" {
		f.Nome = req.Nome
	}
	if req.Contato != nil {
		f.Contato = req.Contato
	}
	if req.Telefone != nil {
		f.Telefone = req.Telefone
	}
	if req.Email != nil {
		f.Email = req.Email
	}
	if req.Endereco != nil {
		f.Endereco = req.Endereco
	}
	if req.PrazoEntrega != nil {
		f.PrazoEntrega = *req.PrazoEntrega
	}

	if err := s.fornecedores.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := toFornecedorResponse(f)
	return &resp, nil
}

func (s *fornecedorService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.fornecedores.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNaoEncontrado
		}
		return err
	}
	total, err := s.fornecedores.CountPedidos(ctx, id)
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrFornecedorComPedidos
	}
	return s.fornecedores.Delete(ctx, id)
}

func toFornecedorResponse(f *model.Fornecedor) dto.FornecedorResponse {
	return dto.FornecedorResponse{
		ID:           f.ID.String(),
		Nome:         f.Nome,
		CNPJ:         f.CNPJ,
		Contato:      f.Contato,
		Telefone:     f.Telefone,
		Email:        f.Email,
		Endereco:     f.Endereco,
		PrazoEntrega: f.PrazoEntrega,
	}
}
