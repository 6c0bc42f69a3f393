package main

import (
	"fmt"
	"log"
	"os"

	"gestor-visitas/internal/agenda"
	"gestor-visitas/internal/anexos"
	"gestor-visitas/internal/auth"
	"gestor-visitas/internal/distancias"
	"gestor-visitas/internal/escolas"
	"gestor-visitas/internal/handlers"
	"gestor-visitas/internal/mediadores"
	"gestor-visitas/internal/models"
	"gestor-visitas/internal/relatorios"
	"gestor-visitas/internal/storage"
	"gestor-visitas/internal/tasks"
	"gestor-visitas/internal/visitas"
	"gestor-visitas/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Gestor de Visitas às Escolas de Taubaté
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHECK")
	if key == "" {
		fmt.Println("Carregando .env")
		if err := godotenv.Load(); err != nil {
			log.Fatal("Erro ao carregar .env")
		}
	}

	storage.ConnectDatabase()

	err := storage.DB.AutoMigrate(
		&models.Usuario{},
		&models.Escola{},
		&models.Mediador{},
		&models.Evento{},
		&models.Visita{},
		&models.TurmaVisita{},
		&models.AnexoVisita{},
	)
	if err != nil {
		log.Fatal("Erro na migração... ", err.Error())
	}

	storage.InitRedis()

	pastaUploads := os.Getenv("UPLOADS_DIR")
	if pastaUploads == "" {
		pastaUploads = "static/uploads"
	}
	armazem := anexos.NovoArmazem(pastaUploads)

	escolasSrv := escolas.NovoServico(storage.DB, escolas.NovoGeocodificador())
	if err := escolasSrv.Semear(); err != nil {
		log.Fatal("Erro ao semear escolas... ", err.Error())
	}

	mediadoresSrv := mediadores.NovoServico(storage.DB)
	registro := visitas.NovoRegistro(storage.DB, armazem)
	motorAgenda := agenda.Nova(storage.DB, registro, escolasSrv)
	distanciasSrv := distancias.NovoServico(storage.DB, storage.RedisClient, escolasSrv)

	gerador, err := relatorios.NovoGerador(os.Getenv("RELATORIOS_DIR"))
	if err != nil {
		log.Fatal("Erro ao preparar pasta de relatórios... ", err.Error())
	}

	tasks.InitScheduler(escolasSrv, distanciasSrv)

	go ws.HubInstance.Run()

	agendaHandler := handlers.NovoAgendaHandler(motorAgenda, ws.HubInstance)
	visitasHandler := handlers.NovoVisitasHandler(registro)
	escolasHandler := handlers.NovoEscolasHandler(escolasSrv)
	mediadoresHandler := handlers.NovoMediadoresHandler(mediadoresSrv)
	distanciasHandler := handlers.NovoDistanciasHandler(distanciasSrv)
	relatoriosHandler := handlers.NovoRelatoriosHandler(gerador, registro, escolasSrv)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.Static("/uploads", pastaUploads)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/refresh", handlers.RefreshToken)
	}

	api := r.Group("/api", auth.AuthMiddleware())
	{
		agendaGroup := api.Group("/agenda")
		{
			agendaGroup.POST("/eventos", agendaHandler.CriarEvento)
			agendaGroup.GET("/eventos", agendaHandler.ListarEventos)
			agendaGroup.GET("/eventos/:id", agendaHandler.ObterEvento)
			agendaGroup.PUT("/eventos/:id", agendaHandler.AtualizarEvento)
			agendaGroup.DELETE("/eventos/:id", agendaHandler.RemoverEvento)
			agendaGroup.POST("/eventos/:id/mover", agendaHandler.MoverEvento)
			agendaGroup.POST("/eventos/:id/duplicar", agendaHandler.DuplicarEvento)
			agendaGroup.POST("/eventos/:id/cancelar", agendaHandler.CancelarEvento)
			agendaGroup.POST("/eventos/:id/executado", agendaHandler.MarcarExecutado)
			agendaGroup.POST("/eventos/:id/executar-visita", agendaHandler.ExecutarVisita)
			agendaGroup.GET("/dia/:data", agendaHandler.Dia)
			agendaGroup.GET("/semana", agendaHandler.Semana)
			agendaGroup.GET("/mes", agendaHandler.Mes)
			agendaGroup.GET("/mes/estatisticas", agendaHandler.EstatisticasMes)
		}

		visitasGroup := api.Group("/visitas")
		{
			visitasGroup.POST("", visitasHandler.Registrar)
			visitasGroup.GET("", visitasHandler.Listar)
			visitasGroup.GET("/estatisticas", visitasHandler.Estatisticas)
			visitasGroup.GET("/:id", visitasHandler.Obter)
			visitasGroup.PUT("/:id/observacoes", visitasHandler.AtualizarObservacoes)
			visitasGroup.DELETE("/:id", visitasHandler.Excluir)
		}

		escolasGroup := api.Group("/escolas")
		{
			escolasGroup.GET("", escolasHandler.Listar)
			escolasGroup.POST("", escolasHandler.Adicionar)
			escolasGroup.GET("/busca", escolasHandler.Buscar)
			escolasGroup.GET("/:id", escolasHandler.Obter)
			escolasGroup.PUT("/:id", escolasHandler.Atualizar)
			escolasGroup.GET("/:id/coordenadas", escolasHandler.Coordenadas)
		}

		mediadoresGroup := api.Group("/mediadores")
		{
			mediadoresGroup.POST("", mediadoresHandler.Adicionar)
			mediadoresGroup.GET("", mediadoresHandler.Listar)
			mediadoresGroup.GET("/busca", mediadoresHandler.Buscar)
			mediadoresGroup.GET("/:id", mediadoresHandler.Obter)
			mediadoresGroup.PUT("/:id", mediadoresHandler.Atualizar)
			mediadoresGroup.POST("/:id/desativar", mediadoresHandler.Desativar)
			mediadoresGroup.POST("/:id/reativar", mediadoresHandler.Reativar)
		}

		distanciasGroup := api.Group("/distancias")
		{
			distanciasGroup.GET("/rota", distanciasHandler.Rota)
			distanciasGroup.GET("/escolas/:id/proximas", distanciasHandler.Proximas)
			distanciasGroup.GET("/matriz", distanciasHandler.Matriz)
		}

		relatoriosGroup := api.Group("/relatorios")
		{
			relatoriosGroup.GET("/texto", relatoriosHandler.Texto)
			relatoriosGroup.GET("/resumo", relatoriosHandler.Resumo)
			relatoriosGroup.GET("/planilha", relatoriosHandler.Planilha)
			relatoriosGroup.GET("/folha-oficinas", relatoriosHandler.FolhaOficinas)
			relatoriosGroup.GET("/escolas-sem-visita", relatoriosHandler.EscolasSemVisita)
		}
	}

	r.GET("/api/agenda/dia/:data/ws", ws.AgendaWebSocketHandler)

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Erro ao iniciar o servidor...", err.Error())
	}
}
