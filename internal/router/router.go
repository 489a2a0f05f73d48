package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mrpproducao/internal/config"
	"mrpproducao/internal/handler"
	"mrpproducao/internal/middleware"
	"mrpproducao/internal/model"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Materiais    *handler.MaterialHandler
	Fornecedores *handler.FornecedorHandler
	Produtos     *handler.ProdutoHandler
	Pedidos      *handler.PedidoHandler
	MRP          *handler.MRPHandler
	Notificacoes *handler.NotificacaoHandler
	Health       *handler.HealthHandler
}

// New builds the Gin engine with the full middleware chain and route table.
func New(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(),
	)

	r.GET("/health", h.Health.Health)
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/me", middleware.JWTAuth(cfg.JWTSecret), h.Auth.Me)
	}

	api := v1.Group("")
	api.Use(middleware.RateLimiter(300, time.Minute), middleware.JWTAuth(cfg.JWTSecret))

	admin := middleware.RequireRole(model.UsuarioTipoAdmin)
	compras := middleware.RequireRole(model.UsuarioTipoAdmin, model.UsuarioTipoComprador)

	usuarios := api.Group("/usuarios", admin)
	{
		usuarios.POST("", h.Auth.CriarUsuario)
		usuarios.GET("", h.Auth.ListarUsuarios)
		usuarios.PUT("/:id", h.Auth.AtualizarUsuario)
		usuarios.DELETE("/:id", h.Auth.DesativarUsuario)
	}

	materiais := api.Group("/materiais")
	{
		materiais.GET("", h.Materiais.Listar)
		materiais.GET("/estoque-baixo", h.Materiais.EstoqueBaixo)
		materiais.GET("/:id", h.Materiais.Obter)
		materiais.POST("", compras, h.Materiais.Criar)
		materiais.PUT("/:id", compras, h.Materiais.Atualizar)
		materiais.DELETE("/:id", admin, h.Materiais.Excluir)
	}

	fornecedores := api.Group("/fornecedores")
	{
		fornecedores.GET("", h.Fornecedores.Listar)
		fornecedores.GET("/:id", h.Fornecedores.Obter)
		fornecedores.POST("", compras, h.Fornecedores.Criar)
		fornecedores.PUT("/:id", compras, h.Fornecedores.Atualizar)
		fornecedores.DELETE("/:id", admin, h.Fornecedores.Excluir)
	}

	produtos := api.Group("/produtos")
	{
		produtos.GET("", h.Produtos.Listar)
		produtos.GET("/:id", h.Produtos.Obter)
		produtos.POST("", compras, h.Produtos.Criar)
		produtos.PUT("/:id", compras, h.Produtos.Atualizar)
		produtos.DELETE("/:id", admin, h.Produtos.Excluir)
		produtos.GET("/:id/materiais", h.Produtos.ListarMateriais)
		produtos.POST("/:id/materiais", compras, h.Produtos.AdicionarMaterial)
		produtos.DELETE("/:id/materiais/:materialId", compras, h.Produtos.RemoverMaterial)
	}

	pedidos := api.Group("/pedidos")
	{
		pedidos.GET("", h.Pedidos.Listar)
		pedidos.GET("/atrasados", h.Pedidos.Atrasados)
		pedidos.GET("/exportar", h.Pedidos.ExportarXLSX)
		pedidos.GET("/:id", h.Pedidos.Obter)
		pedidos.GET("/:id/pdf", h.Pedidos.PDF)
		pedidos.POST("", compras, h.Pedidos.Criar)
		pedidos.PATCH("/:id/status", compras, h.Pedidos.AtualizarStatus)
	}

	mrp := api.Group("/mrp", compras)
	{
		mrp.POST("/verificar-estoque", h.MRP.VerificarEstoque)
		mrp.POST("/verificar-prazos", h.MRP.VerificarPrazos)
	}

	notificacoes := api.Group("/notificacoes")
	{
		notificacoes.GET("", h.Notificacoes.Listar)
		notificacoes.PATCH("/:id/lida", h.Notificacoes.MarcarLida)
	}

	return r
}
