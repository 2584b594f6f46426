package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kidsisland/config"
	"github.com/shashiranjanraj/kidsisland/pkg/app"
)

func TestBootFailsOnUnknownDriver(t *testing.T) {
	prev := config.Get("DB_DRIVER", "")
	config.Set("DB_DRIVER", "postgres")
	t.Cleanup(func() { config.Set("DB_DRIVER", prev) })

	a := app.New()
	err := a.Boot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported DB_DRIVER "postgres"`)

	_, err = a.Handler()
	assert.Error(t, err, "a failed boot leaves the app unbooted")
}
