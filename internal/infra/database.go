package infra

import (
	"fmt"

	"mrpproducao/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all tables, then applies idempotent SQL patches that GORM cannot
// express (partial indexes, seed rows).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Fornecedor{},
		&model.Material{},
		&model.Produto{},
		&model.ProdutoMaterial{},
		&model.Pedido{},
		&model.PedidoItem{},
		&model.PedidoSequencia{},
		&model.Notificacao{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully
// handle. Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the daily overdue-order scan: only non-terminal
		// orders with a delivery date are ever matched.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_atrasados') THEN
		    CREATE INDEX idx_pedidos_atrasados
		        ON pedidos (data_previsao)
		        WHERE status IN ('pendente', 'aprovado', 'enviado') AND data_previsao IS NOT NULL;
		  END IF;
		END $$`,
		// Index for the low-stock scan
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_materiais_estoque_baixo') THEN
		    CREATE INDEX idx_materiais_estoque_baixo
		        ON materiais (estoque_atual)
		        WHERE estoque_atual <= estoque_minimo;
		  END IF;
		END $$`,
		// Unread-notification badge query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_notificacoes_nao_lidas') THEN
		    CREATE INDEX idx_notificacoes_nao_lidas
		        ON notificacoes (usuario_id)
		        WHERE lida = false;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
