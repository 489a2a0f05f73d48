package service

import "mrpproducao/internal/model"

// statusValidos is the closed set of order states.
var statusValidos = map[string]bool{
	model.PedidoStatusPendente:  true,
	model.PedidoStatusAprovado:  true,
	model.PedidoStatusEnviado:   true,
	model.PedidoStatusRecebido:  true,
	model.PedidoStatusCancelado: true,
}

// transicoes is the forward lifecycle. Terminal states (recebido, cancelado)
// have no outgoing edges. Enforced only when STATUS_STRICT is on; the default
// mode accepts any valid status from any state.
var transicoes = map[string][]string{
	model.PedidoStatusPendente:  {model.PedidoStatusAprovado, model.PedidoStatusCancelado},
	model.PedidoStatusAprovado:  {model.PedidoStatusEnviado, model.PedidoStatusCancelado},
	model.PedidoStatusEnviado:   {model.PedidoStatusRecebido, model.PedidoStatusCancelado},
	model.PedidoStatusRecebido:  {},
	model.PedidoStatusCancelado: {},
}

// StatusValido reports whether s belongs to the closed status set.
func StatusValido(s string) bool { return statusValidos[s] }

// TransicaoPermitida reports whether moving from de to para follows the
// lifecycle graph.
func TransicaoPermitida(de, para string) bool {
	for _, s := range transicoes[de] {
		if s == para {
			return true
		}
	}
	return false
}
