// Package identitysvc provides auth.IdentityProvider implementations. The
// actual identity lifecycle (OAuth sign-in, token minting) lives with the
// external provider; this side only needs to revoke sessions it rejects.
package identitysvc

import (
	"context"
	"fmt"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/auth"
)

type consoleProvider struct {
	logger core.Logger
}

var _ auth.IdentityProvider = (*consoleProvider)(nil)

// NewConsoleProvider logs revocations instead of calling out to a provider.
// Good enough for local dev and tests.
func NewConsoleProvider(logger core.Logger) auth.IdentityProvider {
	return &consoleProvider{logger: logger}
}

func (p consoleProvider) SignOut(ctx context.Context, uid string) error {
	if p.logger != nil {
		p.logger.Info(fmt.Sprintf("identity: revoked sessions for uid %q", uid))
	}
	return nil
}
