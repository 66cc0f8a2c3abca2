package infra

import (
	"context"
	"testing"

	"github.com/obrunogonzaga/formatura-2025/config"
)

func TestInfraShutdownTolerantOfMissingClients(t *testing.T) {
	// Every exit path runs Shutdown, including failures before the optional
	// clients came up, so nil fields must not panic.
	infra := &Infra{}
	infra.Shutdown(context.Background())

	infra = &Infra{Logger: InitLoggerClient(&config.EnvConfig{})}
	infra.Shutdown(context.Background())
}
