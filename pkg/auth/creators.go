package auth

import (
	"github.com/saturnines/blocktap-go/pkg/config"
)

// CreateHandler picks the auth handler for cfg. No API key means no
// handler: requests go out anonymous and restricted fields come back null.
func CreateHandler(cfg *config.Config) Handler {
	if cfg == nil || cfg.APIKey == "" {
		return nil
	}
	return NewAuthorizationKey(cfg.APIKey)
}
