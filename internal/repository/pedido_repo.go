package repository

import (
	"context"
	"fmt"
	"time"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PedidoRepository interface {
	// Create inserts the order header and its items. Must be called with a
	// live transaction obtained through DB().Transaction; never commits
	// on its own.
	Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	// NextNumeroPedidoTx allocates the next order number for ano inside tx.
	// The pedido_sequencias row is taken with a row-level lock, so the
	// number is unique under concurrent callers and across processes; the
	// allocation only becomes visible when tx commits.
	NextNumeroPedidoTx(ctx context.Context, tx *gorm.DB, ano int) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	// ListAtrasados expects ref at the start of the current day; orders due
	// on ref's own day are not overdue yet.
	ListAtrasados(ctx context.Context, ref time.Time) ([]model.Pedido, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// UpdateStatusFrom applies the transition only while the stored status
	// still equals de. Returns false when a concurrent caller moved the
	// order first.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, de, para string) (bool, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) NextNumeroPedidoTx(ctx context.Context, tx *gorm.DB, ano int) (string, error) {
	var seq model.PedidoSequencia

	// Upsert-then-lock: the ON CONFLICT no-op insert guarantees the year
	// row exists, so the FOR UPDATE below always has something to lock.
	if err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PedidoSequencia{Ano: ano, Proximo: 1}).Error; err != nil {
		return "", err
	}

	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("ano = ?", ano).
		First(&seq).Error; err != nil {
		return "", err
	}

	numero := fmt.Sprintf("PED-%d-%04d", ano, seq.Proximo)

	if err := tx.WithContext(ctx).
		Model(&model.PedidoSequencia{}).
		Where("ano = ?", ano).
		Update("proximo", seq.Proximo+1).Error; err != nil {
		return "", err
	}

	return numero, nil
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens.Material").
		Preload("Fornecedor").
		Preload("Usuario").
		First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Itens.Material").
		Preload("Fornecedor").
		Preload("Usuario").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&pedidos).Error

	return pedidos, total, err
}

// ListAtrasados returns non-terminal orders whose expected delivery date has
// passed. Read-only; the overdue scan never mutates orders.
func (r *pedidoRepo) ListAtrasados(ctx context.Context, ref time.Time) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Fornecedor").
		Where("status IN ?", []string{
			model.PedidoStatusPendente,
			model.PedidoStatusAprovado,
			model.PedidoStatusEnviado,
		}).
		Where("data_previsao < ?", ref).
		Order("data_previsao ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Pedido{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pedidoRepo) UpdateStatusFrom(ctx context.Context, id uuid.UUID, de, para string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Pedido{}).
		Where("id = ? AND status = ?", id, de).
		Update("status", para)
	return result.RowsAffected > 0, result.Error
}
