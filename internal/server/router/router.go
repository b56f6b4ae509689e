package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/server/handlers"
)

// Handlers bundles every handler the router mounts. Assistant and Reports
// may be nil when their backing services are not configured.
type Handlers struct {
	State      *handlers.StateHandler
	Auth       *handlers.AuthHandler
	Ducks      *handlers.DuckHandler
	Production *handlers.ProductionHandler
	Inventory  *handlers.InventoryHandler
	Finance    *handlers.FinanceHandler
	Events     *handlers.EventsHandler
	Assistant  *handlers.AssistantHandler
	Reports    *handlers.ReportsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)
	api.GET("/auth", h.Auth.Status)

	api.GET("/state", h.State.GetState)
	api.POST("/state/save", h.State.Save)
	api.POST("/state/reset", h.State.Reset)
	api.GET("/state/backup", h.State.Backup)
	api.POST("/state/restore", h.State.Restore)
	api.GET("/company", h.State.GetCompany)
	api.PUT("/company", h.State.UpdateCompany)
	api.PUT("/active-tab", h.State.SetActiveTab)

	api.GET("/ducks", h.Ducks.List)
	api.POST("/ducks", h.Ducks.Create)
	api.PUT("/ducks/:id", h.Ducks.Update)
	api.DELETE("/ducks/:id", h.Ducks.Delete)
	api.POST("/ducks/:id/reset", h.Ducks.Reset)

	api.GET("/deaths", h.Ducks.ListDeaths)
	api.POST("/deaths", h.Ducks.CreateDeath)
	api.DELETE("/deaths/:id", h.Ducks.DeleteDeath)

	api.GET("/production/daily", h.Production.ListDaily)
	api.POST("/production/daily", h.Production.UpsertDaily)
	api.GET("/production/weekly", h.Production.ListWeekly)
	api.POST("/production/weekly", h.Production.CreateWeekly)
	api.PUT("/production/weekly/:id", h.Production.UpdateWeekly)
	api.DELETE("/production/weekly/:id", h.Production.DeleteWeekly)
	api.GET("/production/monthly", h.Production.ListMonthly)

	api.GET("/feeds", h.Inventory.List)
	api.POST("/feeds", h.Inventory.Create)
	api.PUT("/feeds/:id", h.Inventory.Update)
	api.DELETE("/feeds/:id", h.Inventory.Delete)

	api.GET("/transactions", h.Finance.List)
	api.POST("/transactions", h.Finance.Create)
	api.PUT("/transactions/:id", h.Finance.Update)
	api.DELETE("/transactions/:id", h.Finance.Delete)

	api.GET("/events", h.Events.Stream)

	if h.Assistant != nil {
		api.POST("/ai/chat", h.Assistant.Chat)
		api.POST("/ai/predict", h.Assistant.Predict)
		api.POST("/ai/speak", h.Assistant.Speak)
	}

	if h.Reports != nil {
		api.POST("/reports/export", h.Reports.Export)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
