package server

import (
	"context"
	"net/http"

	checkoutdomain "github.com/gemorahq/gemora/internal/checkout/domain"
	"github.com/gemorahq/gemora/internal/config"
	gatewaydomain "github.com/gemorahq/gemora/internal/gateway/domain"
	"github.com/gemorahq/gemora/internal/observability/logger"
	"github.com/gemorahq/gemora/internal/observability/metrics"
	statusdomain "github.com/gemorahq/gemora/internal/orderstatus/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		logger.GinMiddleware(log),
		httpMetrics.GinMiddleware(),
		ErrorHandlingMiddleware(),
	)
	return engine
}

type ServerParams struct {
	fx.In

	Engine      *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	DB          *gorm.DB
	Metrics     *metrics.HTTPMetrics
	StatusSvc   statusdomain.Service
	CheckoutSvc checkoutdomain.Service
	GatewayRepo gatewaydomain.Repository
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	db          *gorm.DB
	metrics     *metrics.HTTPMetrics
	statusSvc   statusdomain.Service
	checkoutSvc checkoutdomain.Service
	gatewayRepo gatewaydomain.Repository
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Engine,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		db:          p.DB,
		metrics:     p.Metrics,
		statusSvc:   p.StatusSvc,
		checkoutSvc: p.CheckoutSvc,
		gatewayRepo: p.GatewayRepo,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	admin := s.engine.Group("/admin")
	{
		admin.GET("/order-statuses", s.ListOrderStatuses)
		admin.POST("/order-statuses", s.CreateOrderStatus)
		admin.PATCH("/order-statuses/:id", s.UpdateOrderStatus)
		admin.DELETE("/order-statuses/:id", s.DeleteOrderStatus)
		admin.POST("/order-statuses/bulk-destroy", s.BulkDestroyOrderStatuses)
		admin.GET("/payment-gateways", s.ListPaymentGateways)
	}

	checkout := s.engine.Group("/checkout")
	{
		checkout.GET("/config", s.CheckoutConfig)
		checkout.POST("/orders/:id/payment-intent", s.EnsurePaymentIntent)
	}
}

func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
