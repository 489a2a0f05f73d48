package repository

import (
	"context"

	"mrpproducao/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	List(ctx context.Context) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	Delete(ctx context.Context, id uuid.UUID) error

	// BOM lines
	AddMaterial(ctx context.Context, pm *model.ProdutoMaterial) error
	ListMateriais(ctx context.Context, produtoID uuid.UUID) ([]model.ProdutoMaterial, error)
	RemoveMaterial(ctx context.Context, produtoID, id uuid.UUID) error
	// DemandaPorMaterial sums the quantity of one material across every
	// product's bill of materials; the downstream demand fed to the
	// quantity planner.
	DemandaPorMaterial(ctx context.Context, materialID uuid.UUID) (decimal.Decimal, error)
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Materiais.Material").First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Order("nome").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("produto_id = ?", id).Delete(&model.ProdutoMaterial{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Produto{}, id).Error
	})
}

func (r *produtoRepo) AddMaterial(ctx context.Context, pm *model.ProdutoMaterial) error {
	return r.db.WithContext(ctx).Create(pm).Error
}

func (r *produtoRepo) ListMateriais(ctx context.Context, produtoID uuid.UUID) ([]model.ProdutoMaterial, error) {
	var linhas []model.ProdutoMaterial
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("produto_id = ?", produtoID).
		Find(&linhas).Error
	return linhas, err
}

func (r *produtoRepo) RemoveMaterial(ctx context.Context, produtoID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND produto_id = ?", id, produtoID).
		Delete(&model.ProdutoMaterial{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *produtoRepo) DemandaPorMaterial(ctx context.Context, materialID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.ProdutoMaterial{}).
		Select("COALESCE(SUM(quantidade), 0)").
		Where("material_id = ?", materialID).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}
