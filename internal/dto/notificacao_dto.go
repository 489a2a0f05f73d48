package dto

// ─── Notificacoes ────────────────────────────────────────────────────────────

type NotificacaoResponse struct {
	ID        string `json:"id"`
	Titulo    string `json:"titulo"`
	Mensagem  string `json:"mensagem"`
	Tipo      string `json:"tipo"`
	Lida      bool   `json:"lida"`
	CreatedAt string `json:"created_at"`
}

type NotificacaoListResponse struct {
	Data     []NotificacaoResponse `json:"data"`
	NaoLidas int64                 `json:"nao_lidas"`
}
