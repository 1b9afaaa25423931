package pokemon

import (
	"testing"

	"pokemon-service/feature/pokemon/lookup/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(nil, new(mocks.Lookup), zap.NewNop())

	assert.Equal(t, "pokemon", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
	assert.NotEmpty(t, app.GetRoutes())
}
