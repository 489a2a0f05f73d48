package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mrpproducao/internal/config"
	"mrpproducao/internal/handler"
	"mrpproducao/internal/infra"
	"mrpproducao/internal/repository"
	"mrpproducao/internal/router"
	"mrpproducao/internal/service"
	"mrpproducao/internal/worker"
)

// @title        MRP Produção API
// @version      1.0
// @description  Material requirements planning back office: inventory, suppliers, purchase orders and automatic replenishment.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	// Repositories
	usuarioRepo := repository.NewUsuarioRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	notificacaoRepo := repository.NewNotificacaoRepository(db)

	// Async infrastructure
	dispatcher := worker.NewDispatcher(rdb)
	mailer := infra.NewMailer(cfg)
	smtpBreaker := infra.NewCircuitBreaker(5, 60*time.Second)

	// Services
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	materialSvc := service.NewMaterialService(materialRepo, fornecedorRepo)
	estoqueSvc := service.NewEstoqueService(materialRepo)
	fornecedorSvc := service.NewFornecedorService(fornecedorRepo)
	produtoSvc := service.NewProdutoService(produtoRepo, materialRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, fornecedorRepo, materialRepo, dispatcher, cfg.PDFStoragePath, cfg.StatusStrict)
	reabastecimentoSvc := service.NewReabastecimentoService(materialRepo, produtoRepo, usuarioRepo, pedidoSvc, dispatcher)
	notificacaoSvc := service.NewNotificacaoService(notificacaoRepo)

	// Worker pool
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	handlers := &worker.WorkerHandlers{
		Notificacao: worker.NewNotificacaoWorker(usuarioRepo, notificacaoRepo, mailer, smtpBreaker),
	}
	worker.StartWorkerPool(workerCtx, rdb, handlers, cfg.WorkerPoolSize)

	// Daily schedules
	scheduler := worker.NewScheduler(reabastecimentoSvc, dispatcher, cfg.EstoqueCheckHora, cfg.PrazoCheckHora)
	scheduler.Start()

	engine := router.New(cfg, &router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Materiais:    handler.NewMaterialHandler(materialSvc, estoqueSvc),
		Fornecedores: handler.NewFornecedorHandler(fornecedorSvc),
		Produtos:     handler.NewProdutoHandler(produtoSvc),
		Pedidos:      handler.NewPedidoHandler(pedidoSvc),
		MRP:          handler.NewMRPHandler(reabastecimentoSvc),
		Notificacoes: handler.NewNotificacaoHandler(notificacaoSvc),
		Health:       handler.NewHealthHandler(db, rdb, smtpBreaker),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	scheduler.Stop()
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("bye")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
