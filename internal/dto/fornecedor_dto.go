package dto

// ─── Fornecedores ────────────────────────────────────────────────────────────

type CriarFornecedorRequest struct {
	Nome         string  `json:"nome"          validate:"required"`
	CNPJ         string  `json:"cnpj"          validate:"required"`
	Contato      *string `json:"contato"`
	Telefone     *string `json:"telefone"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Endereco     *string `json:"endereco"`
	PrazoEntrega int     `json:"prazo_entrega" validate:"min=0"`
}

type AtualizarFornecedorRequest struct {
	Nome         string  `json:"nome"`
	Contato      *string `json:"contato"`
	Telefone     *string `json:"telefone"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Endereco     *string `json:"endereco"`
	PrazoEntrega *int    `json:"prazo_entrega" validate:"omitempty,min=0"`
}

type FornecedorResponse struct {
	ID           string  `json:"id"`
	Nome         string  `json:"nome"`
	CNPJ         string  `json:"cnpj"`
	Contato      *string `json:"contato,omitempty"`
	Telefone     *string `json:"telefone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Endereco     *string `json:"endereco,omitempty"`
	PrazoEntrega int     `json:"prazo_entrega"`
}
