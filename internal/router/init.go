package router

import (
	"github.com/runnershi/runnershi/internal/container"
	handlers "github.com/runnershi/runnershi/internal/interface/http"
	"github.com/runnershi/runnershi/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	service := container.AccountService()
	authHandler := handlers.NewAuthHandler(service, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.AddRoot(modules.NewHelloModule())
}
