package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/auth"
	bannerhandler "github.com/fekuna/kitmed-catalog-service/internal/banner/handler"
	categoryhandler "github.com/fekuna/kitmed-catalog-service/internal/category/handler"
	importhandler "github.com/fekuna/kitmed-catalog-service/internal/importer/handler"
	mediahandler "github.com/fekuna/kitmed-catalog-service/internal/media/handler"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	partnerhandler "github.com/fekuna/kitmed-catalog-service/internal/partner/handler"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/i18n"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	producthandler "github.com/fekuna/kitmed-catalog-service/internal/product/handler"
	rfphandler "github.com/fekuna/kitmed-catalog-service/internal/rfp/handler"
	userhandler "github.com/fekuna/kitmed-catalog-service/internal/user/handler"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Category *categoryhandler.CategoryHandler
	Product  *producthandler.ProductHandler
	Partner  *partnerhandler.PartnerHandler
	Banner   *bannerhandler.BannerHandler
	RFP      *rfphandler.RFPHandler
	User     *userhandler.UserHandler
	Media    *mediahandler.MediaHandler
	Import   *importhandler.ImportHandler
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Options struct {
	Tokens      *auth.TokenManager
	Users       auth.UserLoader
	Translator  *i18n.Translator
	CORSOrigins []string
	UploadDir   string
	Checks      map[string]HealthCheck
}

func NewRouter(h *Handlers, opts Options, log logger.ZapLogger) *gin.Engine {
	r := gin.New()
	r.Use(
		httpx.Recovery(log),
		httpx.RequestID(),
		httpx.Localize(opts.Translator),
		httpx.AccessLog(log),
		httpx.CORS(opts.CORSOrigins),
	)
	r.MaxMultipartMemory = 32 << 20

	r.GET("/healthz", healthz(opts.Checks, log))
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	api := r.Group("/api")
	mountPublic(api, h)

	admin := api.Group("/admin", auth.Authenticate(opts.Tokens, opts.Users))
	mountAdmin(admin, h)

	return r
}

func mountPublic(api *gin.RouterGroup, h *Handlers) {
	api.GET("/categories", h.Category.Tree)
	api.GET("/categories/:slug", h.Category.GetBySlug)

	api.GET("/products", h.Product.PublicList)
	api.GET("/products/:slug", h.Product.PublicGet)
	api.GET("/products/:slug/related", h.Product.PublicRelated)

	api.GET("/partners", h.Partner.PublicList)
	api.GET("/partners/:slug", h.Partner.PublicGet)

	api.GET("/banners", h.Banner.PublicList)

	cart := api.Group("/rfp")
	cart.GET("/cart", h.RFP.GetCart)
	cart.DELETE("/cart", h.RFP.ClearCart)
	cart.POST("/cart/items", h.RFP.AddItem)
	cart.PATCH("/cart/items/:productId", h.RFP.UpdateItem)
	cart.DELETE("/cart/items/:productId", h.RFP.RemoveItem)
	cart.PUT("/cart/contact", h.RFP.SetContact)
	cart.PUT("/cart/details", h.RFP.SetDetails)
	cart.PUT("/cart/step", h.RFP.GoTo)
	cart.POST("/submit", h.RFP.Submit)

	api.POST("/auth/login", h.User.Login)
}

func mountAdmin(admin *gin.RouterGroup, h *Handlers) {
	admin.GET("/me", h.User.Me)

	products := admin.Group("/products", auth.RequirePermission(model.PermProductsWrite))
	products.GET("", h.Product.List)
	products.POST("", h.Product.Create)
	products.GET("/:id", h.Product.Get)
	products.PUT("/:id", h.Product.Update)
	products.DELETE("/:id", h.Product.Delete)

	categories := admin.Group("/categories", auth.RequirePermission(model.PermCategoriesWrite))
	categories.GET("", h.Category.List)
	categories.POST("", h.Category.Create)
	categories.GET("/:id", h.Category.Get)
	categories.PUT("/:id", h.Category.Update)
	categories.DELETE("/:id", h.Category.Delete)

	partners := admin.Group("/partners", auth.RequirePermission(model.PermPartnersWrite))
	partners.GET("", h.Partner.List)
	partners.POST("", h.Partner.Create)
	partners.GET("/:id", h.Partner.Get)
	partners.PUT("/:id", h.Partner.Update)
	partners.DELETE("/:id", h.Partner.Delete)

	banners := admin.Group("/banners", auth.RequirePermission(model.PermBannersWrite))
	banners.GET("", h.Banner.List)
	banners.POST("", h.Banner.Create)
	banners.GET("/:id", h.Banner.Get)
	banners.PUT("/:id", h.Banner.Update)
	banners.DELETE("/:id", h.Banner.Delete)

	users := admin.Group("/users", auth.RequirePermission(model.PermUsersManage))
	users.GET("", h.User.List)
	users.POST("", h.User.Create)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)
	users.PUT("/:id/permissions", h.User.SetPermissions)

	rfp := admin.Group("/rfp")
	rfp.GET("", auth.RequirePermission(model.PermRFPRead, model.PermRFPWrite), h.RFP.List)
	rfp.GET("/:id", auth.RequirePermission(model.PermRFPRead, model.PermRFPWrite), h.RFP.Get)
	rfp.PATCH("/:id/status", auth.RequirePermission(model.PermRFPWrite), h.RFP.UpdateStatus)

	uploads := admin.Group("/uploads", auth.RequirePermission(model.PermMediaWrite, model.PermProductsWrite))
	uploads.POST("", h.Media.Upload)
	uploads.GET("/:id", h.Media.Get)

	imports := admin.Group("/import", auth.RequirePermission(model.PermImportRun))
	imports.POST("/validate", h.Import.Validate)
	imports.POST("", h.Import.Import)
}

func healthz(checks map[string]HealthCheck, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		report := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
				report[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			report[name] = "up"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": report})
	}
}
