package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Defaults only; the controller layers a config file on top before running.
	return container.Provide(NewSettings)
}
