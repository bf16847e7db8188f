package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/aryasetya/go-auth-api/internal/interface/http"
	"github.com/aryasetya/go-auth-api/internal/interface/middleware"
	"github.com/aryasetya/go-auth-api/pkg/helpers"
)

// Module wires the user HTTP handlers and the bearer-token guard into routes.
// Public: POST /create, POST /login
// Protected: GET /, GET /:id

type Module struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func New(h *handlers.UserHandler, jwt *helpers.JWTManager) *Module {
	return &Module{Handler: h, JWT: jwt}
}

func (m *Module) Register(rg *gin.RouterGroup) {
	rg.POST("/create", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/", m.Handler.List)
		auth.GET("/:id", m.Handler.GetByID)
	}
}
