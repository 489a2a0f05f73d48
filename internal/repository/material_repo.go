package repository

import (
	"context"

	"mrpproducao/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	List(ctx context.Context) ([]model.Material, error)
	Update(ctx context.Context, m *model.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListEstoqueBaixo is the inventory snapshot for the replenishment
	// engine: every material at or below its reorder point, supplier
	// preloaded. Pure read; materials without a supplier are included.
	ListEstoqueBaixo(ctx context.Context) ([]model.Material, error)
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).Preload("Fornecedor").First(&m, id).Error
	return &m, err
}

func (r *materialRepo) List(ctx context.Context) ([]model.Material, error) {
	var materiais []model.Material
	err := r.db.WithContext(ctx).Preload("Fornecedor").Order("nome").Find(&materiais).Error
	return materiais, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Material{}, id).Error
}

func (r *materialRepo) ListEstoqueBaixo(ctx context.Context) ([]model.Material, error) {
	var materiais []model.Material
	err := r.db.WithContext(ctx).
		Preload("Fornecedor").
		Where("estoque_atual <= estoque_minimo").
		Order("nome").
		Find(&materiais).Error
	return materiais, err
}
