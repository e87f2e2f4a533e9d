package handlers

import (
	"unicode"

	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/core/services"
	"github.com/arthaworks/ledgerengine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, container *portssvc.ServiceContainer) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, container)
}

// registerCustomValidators extends gin's binding validator with an iso4217
// check: three uppercase letters.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("iso4217code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 3 {
			return false
		}
		for _, r := range code {
			if !unicode.IsUpper(r) {
				return false
			}
		}
		return true
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(r *gin.Engine, container *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	recovery := services.NewErrorRecoveryManager()
	registerAccountRoutes(v1, container.Registry, recovery)
	registerTransactionRoutes(v1, container.Journal, container.Engine, recovery)
	registerSuggestionRoutes(v1, container.Suggester)
}
