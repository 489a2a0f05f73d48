package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"mrpproducao/internal/dto"
)

// EstoqueJobs is the slice of the replenishment service the scheduler drives.
type EstoqueJobs interface {
	VerificarEGerarPedidos(ctx context.Context) (*dto.VerificacaoEstoqueResponse, error)
	VerificarAtrasados(ctx context.Context) (*dto.VerificacaoPrazosResponse, error)
}

// notificador is the slice of the Dispatcher the scheduler needs.
type notificador interface {
	EnqueueNotificacao(ctx context.Context, payload NotificacaoJobPayload) error
}

// Scheduler fires the two daily MRP jobs at fixed local wall-clock times:
// the stock check that generates automatic orders, and the overdue-order
// scan. A job failure is reported to admins and never stops the loop.
type Scheduler struct {
	jobs       EstoqueJobs
	dispatcher notificador

	estoqueHora string // "HH:MM"
	prazoHora   string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(jobs EstoqueJobs, dispatcher *Dispatcher, estoqueHora, prazoHora string) *Scheduler {
	s := &Scheduler{
		jobs:        jobs,
		estoqueHora: estoqueHora,
		prazoHora:   prazoHora,
	}
	if dispatcher != nil {
		s.dispatcher = dispatcher
	}
	return s
}

// Start launches one goroutine per job. Call Stop to shut down.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(2)
	go s.runDaily(ctx, "verificacao_estoque", s.estoqueHora, s.runEstoqueCheck)
	go s.runDaily(ctx, "verificacao_prazos", s.prazoHora, s.runPrazoCheck)
	log.Info().
		Str("estoque", s.estoqueHora).
		Str("prazos", s.prazoHora).
		Msg("scheduler started")
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) runDaily(ctx context.Context, name, hora string, job func(context.Context)) {
	defer s.wg.Done()
	for {
		wait, err := untilNext(time.Now(), hora)
		if err != nil {
			log.Error().Err(err).Str("job", name).Msg("invalid schedule time, job disabled")
			return
		}
		log.Debug().Str("job", name).Dur("wait", wait).Msg("next run scheduled")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runSafely(ctx, name, job)
		}
	}
}

// runSafely isolates a single run: panics are recovered so one bad day never
// kills the schedule.
func (s *Scheduler) runSafely(ctx context.Context, name string, job func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("job", name).Interface("panic", r).Msg("scheduled job panicked")
			s.notifyAdmins(ctx, "error", "Falha na rotina agendada",
				fmt.Sprintf("A rotina %s falhou de forma inesperada.", name))
		}
	}()
	start := time.Now()
	job(ctx)
	log.Info().Str("job", name).Dur("elapsed", time.Since(start)).Msg("scheduled job finished")
}

func (s *Scheduler) runEstoqueCheck(ctx context.Context) {
	resumo, err := s.jobs.VerificarEGerarPedidos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("stock check failed")
		s.notifyAdmins(ctx, "error", "Falha na verificação de estoque",
			"A verificação automática de estoque falhou: "+err.Error())
		return
	}
	if resumo.PedidosCriados > 0 {
		s.notifyAdmins(ctx, "info", "Pedidos automáticos gerados",
			fmt.Sprintf("A verificação de estoque gerou %d pedido(s) de compra.", resumo.PedidosCriados))
	}
}

func (s *Scheduler) runPrazoCheck(ctx context.Context) {
	if _, err := s.jobs.VerificarAtrasados(ctx); err != nil {
		log.Error().Err(err).Msg("overdue check failed")
		s.notifyAdmins(ctx, "error", "Falha na verificação de prazos",
			"A verificação de pedidos atrasados falhou: "+err.Error())
	}
}

func (s *Scheduler) notifyAdmins(ctx context.Context, tipo, titulo, mensagem string) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.EnqueueNotificacao(ctx, NotificacaoJobPayload{
		Papel:    "admin",
		Titulo:   titulo,
		Mensagem: mensagem,
		Tipo:     tipo,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to enqueue admin notification")
	}
}

// untilNext computes how long to wait from now until the next occurrence of
// the local wall-clock time "HH:MM". If the time already passed today the
// next occurrence is tomorrow.
func untilNext(now time.Time, hora string) (time.Duration, error) {
	t, err := time.Parse("15:04", hora)
	if err != nil {
		return 0, fmt.Errorf("parse schedule time %q: %w", hora, err)
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now), nil
}
