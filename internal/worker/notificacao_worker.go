package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"mrpproducao/internal/infra"
	"mrpproducao/internal/model"
	"mrpproducao/internal/repository"
)

// NotificacaoWorker resolves a role to its active users and writes one
// notification row per user. When SMTP is configured, users with an email on
// file also get a copy by mail, guarded by a circuit breaker so a flapping
// relay cannot stall the queue.
type NotificacaoWorker struct {
	usuarios     repository.UsuarioRepository
	notificacoes repository.NotificacaoRepository
	mailer       *infra.Mailer
	breaker      *infra.CircuitBreaker
}

func NewNotificacaoWorker(
	usuarios repository.UsuarioRepository,
	notificacoes repository.NotificacaoRepository,
	mailer *infra.Mailer,
	breaker *infra.CircuitBreaker,
) *NotificacaoWorker {
	return &NotificacaoWorker{
		usuarios:     usuarios,
		notificacoes: notificacoes,
		mailer:       mailer,
		breaker:      breaker,
	}
}

func (w *NotificacaoWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var job NotificacaoJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("unmarshal notificacao payload: %w", err)
	}

	usuarios, err := w.usuarios.ListByTipo(ctx, job.Papel)
	if err != nil {
		return fmt.Errorf("list users by role %s: %w", job.Papel, err)
	}
	if len(usuarios) == 0 {
		// Nobody holds the role. Not an error; the job completes empty.
		log.Warn().Str("papel", job.Papel).Str("titulo", job.Titulo).Msg("no users for role, notification dropped")
		return nil
	}

	var failed int
	for _, u := range usuarios {
		n := &model.Notificacao{
			UsuarioID: u.ID,
			Titulo:    job.Titulo,
			Mensagem:  job.Mensagem,
			Tipo:      job.Tipo,
		}
		if err := w.notificacoes.Create(ctx, n); err != nil {
			log.Error().Err(err).Str("usuario", u.Username).Msg("failed to persist notification")
			failed++
			continue
		}
		w.sendEmailCopy(u, job)
	}
	if failed == len(usuarios) {
		return fmt.Errorf("all %d notification inserts failed for role %s", failed, job.Papel)
	}
	return nil
}

// sendEmailCopy is best-effort: a dead relay must not fail the job, the
// in-app notification row is already persisted.
func (w *NotificacaoWorker) sendEmailCopy(u model.Usuario, job NotificacaoJobPayload) {
	if w.mailer == nil || !w.mailer.Enabled() || u.Email == nil || *u.Email == "" {
		return
	}
	err := w.breaker.Execute(func() error {
		return w.mailer.Send(*u.Email, job.Titulo, job.Mensagem, job.PDFPath)
	})
	if err != nil {
		log.Warn().Err(err).Str("usuario", u.Username).Msg("email copy not sent")
	}
}
