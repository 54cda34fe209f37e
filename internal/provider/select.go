package provider

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Becky0713/NOAH/config"
)

// New builds the provider named by the configuration.
func New(cfg *config.Config, logger *logrus.Logger) (Provider, error) {
	switch cfg.DataProvider {
	case config.ProviderSocrata:
		return NewSocrata(cfg, logger), nil
	case config.ProviderMirror:
		return NewMirror(cfg.Database.MirrorURL)
	case config.ProviderFixture:
		return NewFixture()
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.DataProvider)
	}
}
