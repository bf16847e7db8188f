package router

import (
	userapp "github.com/aryasetya/go-auth-api/internal/application"
	"github.com/aryasetya/go-auth-api/internal/container"
	pginfra "github.com/aryasetya/go-auth-api/internal/infrastructure/postgres"
	handlers "github.com/aryasetya/go-auth-api/internal/interface/http"
	usermodule "github.com/aryasetya/go-auth-api/internal/router/modules"
)

func buildUserModule() Module {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetPublisher(),
		container.GetConfig().BcryptCost,
	)

	handler := handlers.NewUserHandler(service, container.GetLogger())

	return usermodule.New(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildUserModule())
}
