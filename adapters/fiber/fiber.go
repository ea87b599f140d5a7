package fiber

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/cy6erlion/kong-kontrollers/core"
	"github.com/cy6erlion/kong-kontrollers/services"
)

// Adapter registers the account routes on a fiber application.
type Adapter struct {
	app        *fiber.App
	handler    core.AuthHandler
	cookieName string
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

// RegisterRoutes binds the base endpoint set to fiber handlers.
func (a *Adapter) RegisterRoutes(handler core.AuthHandler, basePath, cookieName string) error {
	a.handler = handler
	a.cookieName = cookieName

	handlers := map[string]fiber.Handler{
		"createAccount":    a.createAccount,
		"getPublicAccount": a.publicAccount,
		"login":            a.login,
	}

	api := a.app.Group(basePath)
	for _, ep := range services.NewEndpointRegistry().Endpoints() {
		h, ok := handlers[ep.OperationID]
		if !ok {
			return fmt.Errorf("no handler for operation %q", ep.OperationID)
		}
		api.Add([]string{ep.Method}, ep.Path, h)
	}

	return nil
}
