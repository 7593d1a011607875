package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/mucyuneje/asamfxproduction/docs"
	v1 "github.com/mucyuneje/asamfxproduction/internal/api/handler/v1"
	"github.com/mucyuneje/asamfxproduction/internal/api/middleware"
	"github.com/mucyuneje/asamfxproduction/internal/config"
	"github.com/mucyuneje/asamfxproduction/internal/repository"
	"github.com/mucyuneje/asamfxproduction/internal/repository/dao"
	"github.com/mucyuneje/asamfxproduction/internal/service"
	"github.com/mucyuneje/asamfxproduction/internal/storage"
	"github.com/mucyuneje/asamfxproduction/internal/videohost"
)

const basePath = "/api/v1"

// Deps are the collaborators built in cmd/app and shared by every handler.
type Deps struct {
	DB        *gorm.DB
	Store     storage.Store
	VideoHost videohost.Host
	Publisher service.EventPublisher
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type repositories struct {
	users    *repository.UserRepository
	videos   *repository.VideoRepository
	kits     *repository.KitRepository
	payments *repository.PaymentRepository
	settings *repository.SettingsRepository
}

type handlers struct {
	auth     *v1.AuthHandler
	user     *v1.UserHandler
	video    *v1.VideoHandler
	kit      *v1.KitHandler
	payment  *v1.PaymentHandler
	catalog  *v1.CatalogHandler
	settings *v1.SettingsHandler
	stats    *v1.StatsHandler
}

func NewServer(conf *config.AppConfig, deps Deps) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	repos := newRepositories(deps.DB)
	s.MountHandlers(s.initHandlers(repos, deps))
	s.MountUploads(deps.Store)

	return s
}

func newRepositories(db *gorm.DB) repositories {
	return repositories{
		users:    repository.NewUserRepository(dao.NewUserDAO(db)),
		videos:   repository.NewVideoRepository(dao.NewVideoDAO(db)),
		kits:     repository.NewKitRepository(dao.NewKitDAO(db)),
		payments: repository.NewPaymentRepository(dao.NewPaymentDAO(db)),
		settings: repository.NewSettingsRepository(dao.NewSettingsDAO(db)),
	}
}

func (s *Server) initHandlers(repos repositories, deps Deps) handlers {
	maxUploadMB := s.Config.API.MaxUploadMB

	return handlers{
		auth:     v1.NewAuthHandler(s.Config.API, service.NewAuthService(repos.users)),
		user:     v1.NewUserHandler(service.NewUserService(repos.users)),
		video:    v1.NewVideoHandler(service.NewVideoService(repos.videos, repos.payments, repos.kits, deps.VideoHost)),
		kit:      v1.NewKitHandler(service.NewKitService(repos.kits, repos.videos, repos.payments, deps.Store), maxUploadMB),
		payment:  v1.NewPaymentHandler(service.NewPaymentService(repos.payments, repos.videos, repos.kits, deps.Store, deps.Publisher), maxUploadMB),
		catalog:  v1.NewCatalogHandler(service.NewCatalogService(repos.videos, repos.kits, repos.payments)),
		settings: v1.NewSettingsHandler(service.NewSettingsService(repos.settings)),
		stats:    v1.NewStatsHandler(service.NewStatsService(repos.videos, repos.kits, repos.users, repos.payments)),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.CORSDomains))
	if s.Config.Tracing != nil && s.Config.Tracing.Enabled {
		s.Router.Use(otelgin.Middleware(s.Config.Tracing.ServiceName))
	}
}

func (s *Server) MountHandlers(h handlers) {
	public := s.Router.Group(basePath)
	{
		public.POST("/auth/register", h.auth.HandleRegister)
		public.POST("/auth/login", h.auth.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", h.user.HandleGetMe)

		authed.GET("/videos", h.video.HandleListVideos)
		authed.POST("/videos", h.video.HandleCreateVideo)
		authed.POST("/videos/uploads", h.video.HandleCreateUpload)
		authed.GET("/videos/uploads/:uploadID", h.video.HandleSyncUpload)
		authed.GET("/videos/:videoID", h.video.HandleGetVideo)
		authed.GET("/videos/:videoID/playback", h.video.HandlePlayback)
		authed.PATCH("/videos/:videoID", h.video.HandleUpdateVideo)
		authed.DELETE("/videos/:videoID", h.video.HandleDeleteVideo)

		authed.GET("/kits", h.kit.HandleListKits)
		authed.POST("/kits", h.kit.HandleCreateKit)
		authed.PATCH("/kits/:kitID", h.kit.HandleUpdateKit)
		authed.DELETE("/kits/:kitID", h.kit.HandleDeleteKit)
		authed.POST("/kits/:kitID/videos", h.kit.HandleAddKitVideos)
		authed.DELETE("/kits/:kitID/videos/:videoID", h.kit.HandleRemoveKitVideo)

		authed.POST("/payments", h.payment.HandleSubmitPayment)
		authed.GET("/payments", h.payment.HandleListPayments)
		authed.PATCH("/payments/:paymentID/status", h.payment.HandleDecidePayment)
		authed.GET("/kit-purchases", h.payment.HandleListKitPurchases)
		authed.PATCH("/kit-purchases/:purchaseID/status", h.payment.HandleDecideKitPurchase)

		authed.GET("/me/payments", h.payment.HandleListOwnPayments)
		authed.GET("/me/kit-purchases", h.payment.HandleListOwnKitPurchases)
		authed.GET("/me/catalog", h.catalog.HandleGetCatalog)
		authed.GET("/me/summary", h.catalog.HandleGetSummary)

		authed.GET("/payment-settings", h.settings.HandleGetSettings)
		authed.PUT("/payment-settings", h.settings.HandleSaveSettings)

		authed.GET("/admin/stats", h.stats.HandleGetStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ASAM FX production API"
	docs.SwaggerInfo.Description = "Video lessons unlocked by admin approved payments."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// MountUploads serves stored files when they live on local disk.
func (s *Server) MountUploads(store storage.Store) {
	local, ok := store.(*storage.Local)
	if !ok {
		return
	}

	s.Router.Static(local.PublicPrefix(), local.Dir())
}
