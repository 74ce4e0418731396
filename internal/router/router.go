package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Jepersonsam/my-finance-app/internal/config"
	"github.com/Jepersonsam/my-finance-app/internal/handler"
	"github.com/Jepersonsam/my-finance-app/internal/middleware"
	"github.com/Jepersonsam/my-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine and registers all routes.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(func(c *gin.Context, _ any) {
		util.Error(c, http.StatusInternalServerError, "Internal server error")
	}))

	r.NoRoute(func(c *gin.Context) {
		util.Error(c, http.StatusNotFound, "Not found")
	})
	// NoMethod runs outside the protected group, so an unsupported
	// method answers 405 even without credentials. The method check is
	// a routing concern and precedes auth here.
	r.HandleMethodNotAllowed = true
	r.NoMethod(methodNotAllowed(r))

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireDays, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.Auth(cfg.JWT.Secret, db),
		middleware.Audit(db),
	)

	protected.GET("/auth/me", authHandler.Me)

	txHandler := handler.NewTransactionHandler(db)
	protected.GET("/transactions", txHandler.List)
	protected.POST("/transactions", txHandler.Create)
	protected.GET("/transactions/:id", txHandler.Get)
	protected.PUT("/transactions/:id", txHandler.Update)
	protected.DELETE("/transactions/:id", txHandler.Delete)

	budgetHandler := handler.NewBudgetHandler(db)
	protected.GET("/budgets", budgetHandler.List)
	protected.POST("/budgets", budgetHandler.Create)
	protected.GET("/budgets/:id", budgetHandler.Get)
	protected.PUT("/budgets/:id", budgetHandler.Update)
	protected.DELETE("/budgets/:id", budgetHandler.Delete)

	savingHandler := handler.NewSavingHandler(db)
	protected.GET("/savings", savingHandler.List)
	protected.POST("/savings", savingHandler.Create)
	protected.GET("/savings/:id", savingHandler.Get)
	protected.PUT("/savings/:id", savingHandler.Update)
	protected.DELETE("/savings/:id", savingHandler.Delete)
	protected.POST("/savings/:id/deposit", savingHandler.Deposit)

	installmentHandler := handler.NewInstallmentHandler(db)
	protected.GET("/installments", installmentHandler.List)
	protected.POST("/installments", installmentHandler.Create)
	protected.GET("/installments/:id", installmentHandler.Get)
	protected.PUT("/installments/:id", installmentHandler.Update)
	protected.DELETE("/installments/:id", installmentHandler.Delete)
	protected.POST("/installments/:id/payments", installmentHandler.Pay)

	debtHandler := handler.NewDebtHandler(db)
	protected.GET("/debts", debtHandler.List)
	protected.POST("/debts", debtHandler.Create)
	protected.GET("/debts/:id", debtHandler.Get)
	protected.PUT("/debts/:id", debtHandler.Update)
	protected.DELETE("/debts/:id", debtHandler.Delete)
	protected.POST("/debts/:id/payments", debtHandler.Pay)

	reportHandler := handler.NewReportHandler(db)
	protected.GET("/reports/summary", reportHandler.Summary)
	protected.GET("/reports/forecast", reportHandler.Forecast)
	protected.GET("/reports/analysis", reportHandler.Analysis)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/transactions/csv", exportHandler.CSV)
	protected.GET("/export/transactions/xlsx", exportHandler.XLSX)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.List)

	return r
}

// methodNotAllowed answers 405 with an Allow header. Gin flags the
// condition but does not compute the allowed set, so it is derived
// from the registered route table here.
func methodNotAllowed(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := allowedMethods(r.Routes(), c.Request.URL.Path)
		if len(allowed) > 0 {
			c.Header("Allow", strings.Join(allowed, ", "))
		}
		util.Error(c, http.StatusMethodNotAllowed, "Method "+c.Request.Method+" Not Allowed")
	}
}

func allowedMethods(routes gin.RoutesInfo, path string) []string {
	seen := make(map[string]bool)
	for _, route := range routes {
		if routeMatches(route.Path, path) {
			seen[route.Method] = true
		}
	}

	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// routeMatches reports whether a registered pattern like
// "/api/transactions/:id" covers the concrete request path.
func routeMatches(pattern, path string) bool {
	pp := strings.Split(strings.Trim(pattern, "/"), "/")
	sp := strings.Split(strings.Trim(path, "/"), "/")
	if len(pp) != len(sp) {
		return false
	}
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			continue
		}
		if seg != sp[i] {
			return false
		}
	}
	return true
}
