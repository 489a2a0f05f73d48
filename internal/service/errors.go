package service

import "errors"

// Sentinel errors the handler layer maps to HTTP status codes.
var (
	ErrNaoEncontrado        = errors.New("registro nao encontrado")
	ErrCredenciaisInvalidas = errors.New("credenciais invalidas")
	ErrUsuarioInativo       = errors.New("usuario inativo")
	ErrUsernameEmUso        = errors.New("username ja cadastrado")
	ErrCodigoEmUso          = errors.New("codigo interno ja cadastrado")
	ErrCNPJEmUso            = errors.New("cnpj ja cadastrado")

	// ErrEstoqueMinMax rejects inverted thresholds: a minimum above the
	// maximum would make the planner target negative replenishment.
	ErrEstoqueMinMax = errors.New("estoque minimo nao pode ser maior que o maximo")

	// ErrFornecedorComPedidos blocks deleting a supplier that has orders.
	ErrFornecedorComPedidos = errors.New("fornecedor possui pedidos vinculados")

	// ErrMaterialJaNoBOM rejects a duplicate bill-of-materials line.
	ErrMaterialJaNoBOM = errors.New("material ja consta na lista do produto")

	ErrPedidoSemItens     = errors.New("pedido deve conter ao menos um item")
	ErrQuantidadeInvalida = errors.New("quantidade do item deve ser positiva")
	ErrValorInvalido      = errors.New("valor unitario do item nao pode ser negativo")
	ErrStatusInvalido     = errors.New("status de pedido desconhecido")
	ErrTransicaoInvalida  = errors.New("transicao de status nao permitida")
	ErrFornecedorInvalido = errors.New("fornecedor nao encontrado")
	ErrMaterialInvalido   = errors.New("material nao encontrado")
)
