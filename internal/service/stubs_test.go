package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mrpproducao/internal/dto"
	"mrpproducao/internal/model"
)

// In-memory repository stubs. The nil *gorm.DB returned by stubPedidoRepo.DB
// makes the service run its transaction body without a real database.

type stubMaterialRepo struct {
	materiais map[uuid.UUID]*model.Material
	baixos    []model.Material
	err       error
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materiais: map[uuid.UUID]*model.Material{}}
}

func (r *stubMaterialRepo) add(m *model.Material) *model.Material {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.materiais[m.ID] = m
	return m
}

func (r *stubMaterialRepo) Create(ctx context.Context, m *model.Material) error {
	r.add(m)
	return r.err
}

func (r *stubMaterialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	if m, ok := r.materiais[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMaterialRepo) List(ctx context.Context) ([]model.Material, error) {
	var out []model.Material
	for _, m := range r.materiais {
		out = append(out, *m)
	}
	return out, r.err
}

func (r *stubMaterialRepo) Update(ctx context.Context, m *model.Material) error {
	r.materiais[m.ID] = m
	return r.err
}

func (r *stubMaterialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.materiais, id)
	return r.err
}

func (r *stubMaterialRepo) ListEstoqueBaixo(ctx context.Context) ([]model.Material, error) {
	return r.baixos, r.err
}

type stubFornecedorRepo struct {
	fornecedores map[uuid.UUID]*model.Fornecedor
	pedidoCount  int64
}

func newStubFornecedorRepo() *stubFornecedorRepo {
	return &stubFornecedorRepo{fornecedores: map[uuid.UUID]*model.Fornecedor{}}
}

func (r *stubFornecedorRepo) add(f *model.Fornecedor) *model.Fornecedor {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.fornecedores[f.ID] = f
	return f
}

func (r *stubFornecedorRepo) Create(ctx context.Context, f *model.Fornecedor) error {
	r.add(f)
	return nil
}

func (r *stubFornecedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error) {
	if f, ok := r.fornecedores[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFornecedorRepo) List(ctx context.Context) ([]model.Fornecedor, error) {
	var out []model.Fornecedor
	for _, f := range r.fornecedores {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFornecedorRepo) Update(ctx context.Context, f *model.Fornecedor) error {
	r.fornecedores[f.ID] = f
	return nil
}

func (r *stubFornecedorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.fornecedores, id)
	return nil
}

func (r *stubFornecedorRepo) CountPedidos(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.pedidoCount, nil
}

type stubProdutoRepo struct {
	demanda map[uuid.UUID]decimal.Decimal
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{demanda: map[uuid.UUID]decimal.Decimal{}}
}

func (r *stubProdutoRepo) Create(ctx context.Context, p *model.Produto) error { return nil }
func (r *stubProdutoRepo) Update(ctx context.Context, p *model.Produto) error { return nil }
func (r *stubProdutoRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (r *stubProdutoRepo) List(ctx context.Context) ([]model.Produto, error)  { return nil, nil }
func (r *stubProdutoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubProdutoRepo) AddMaterial(ctx context.Context, pm *model.ProdutoMaterial) error {
	return nil
}
func (r *stubProdutoRepo) ListMateriais(ctx context.Context, produtoID uuid.UUID) ([]model.ProdutoMaterial, error) {
	return nil, nil
}
func (r *stubProdutoRepo) RemoveMaterial(ctx context.Context, produtoID, id uuid.UUID) error {
	return nil
}
func (r *stubProdutoRepo) DemandaPorMaterial(ctx context.Context, materialID uuid.UUID) (decimal.Decimal, error) {
	if d, ok := r.demanda[materialID]; ok {
		return d, nil
	}
	return decimal.Zero, nil
}

type stubUsuarioRepo struct {
	usuarios []model.Usuario
}

func (r *stubUsuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios = append(r.usuarios, *u)
	return nil
}

func (r *stubUsuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	for i := range r.usuarios {
		if r.usuarios[i].ID == id {
			return &r.usuarios[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	for i := range r.usuarios {
		if r.usuarios[i].Username == username {
			return &r.usuarios[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) ListByTipo(ctx context.Context, tipo string) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Tipo == tipo && u.Ativo {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	return r.usuarios, nil
}

func (r *stubUsuarioRepo) Update(ctx context.Context, u *model.Usuario) error { return nil }
func (r *stubUsuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }

// stubPedidoRepo keeps created orders in memory and allocates sequential
// numbers the same way the real repository does.
type stubPedidoRepo struct {
	pedidos      map[uuid.UUID]*model.Pedido
	proximo      map[int]int
	atrasados    []model.Pedido
	atrasadosRef time.Time
	createErr    error
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: map[uuid.UUID]*model.Pedido{}, proximo: map[int]int{}}
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

func (r *stubPedidoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) NextNumeroPedidoTx(ctx context.Context, tx *gorm.DB, ano int) (string, error) {
	n := r.proximo[ano] + 1
	r.proximo[ano] = n
	return fmt.Sprintf("PED-%d-%04d", ano, n), nil
}

func (r *stubPedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	if p, ok := r.pedidos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if filter.Status != "" && filter.Status != "all" && p.Status != filter.Status {
			continue
		}
		if filter.Tipo != "" && p.Tipo != filter.Tipo {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) ListAtrasados(ctx context.Context, ref time.Time) ([]model.Pedido, error) {
	r.atrasadosRef = ref
	return r.atrasados, nil
}

func (r *stubPedidoRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (r *stubPedidoRepo) UpdateStatusFrom(ctx context.Context, id uuid.UUID, de, para string) (bool, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Status != de {
		return false, nil
	}
	p.Status = para
	return true, nil
}
