package handlers

import (
	"log"
	"regexp"

	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/middleware"
	"github.com/finbook/finbook_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

var commodityCodeRe = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// RegisterValidators installs custom validation tags on gin's binding engine.
// Must run once before the routes start serving.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("commoditycode", func(fl validator.FieldLevel) bool {
			return commodityCodeRe.MatchString(fl.Field().String())
		})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		log.Printf("Warning: Invalid RATE_LIMIT %q, defaulting to 100-M\n", cfg.RateLimit)
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1", cors.Default(), middleware.RateLimit(ipLimiter))

	registerCommodityRoutes(v1, services.Commodity, services.Price)
	registerPriceRoutes(v1, services.Price)
	registerBankRoutes(v1, services.Bank)
	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction, services.Posting, services.Commodity)
}
