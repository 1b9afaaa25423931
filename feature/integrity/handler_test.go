package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"pokemon-service/core/database/dbtest"
	"pokemon-service/core/storage/mocks"
	"pokemon-service/feature/cleaning"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, archive *cleaning.Archive) (*fiber.App, *Service) {
	app := fiber.New()
	svc := NewService(dbtest.NewStore(t), archive, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleServerCheck(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	status, body := getJSON(t, app, "/integrity/server")
	assert.Equal(t, 200, status)
	assert.Equal(t, "sqlite", body["driver"])
	assert.Equal(t, true, body["matched"])
}

func TestHandleServerCheck_Unavailable(t *testing.T) {
	app, svc := setupTestApp(t, nil)
	require.NoError(t, svc.store.Close())

	status, body := getJSON(t, app, "/integrity/server")
	assert.Equal(t, 500, status)
	assert.Equal(t, "schema inspection failed", body["error"])
}

func TestHandleReportsCheck(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)

		status, body := getJSON(t, app, "/integrity/reports")
		assert.Equal(t, 404, status)
		assert.Equal(t, ErrStorageDisabled.Error(), body["error"])
	})

	t.Run("Listed", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "reports", mock.Anything).
			Return(objects(minio.ObjectInfo{Key: "cleaning/report_7.json"}))
		app, _ := setupTestApp(t, cleaning.NewArchive(client, "reports"))

		status, body := getJSON(t, app, "/integrity/reports")
		assert.Equal(t, 200, status)
		assert.Equal(t, []any{"cleaning/report_7.json"}, body["reports"])
	})

	t.Run("Unreachable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "reports", mock.Anything).
			Return(objects(minio.ObjectInfo{Err: assert.AnError}))
		app, _ := setupTestApp(t, cleaning.NewArchive(client, "reports"))

		status, _ := getJSON(t, app, "/integrity/reports")
		assert.Equal(t, 500, status)
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	status, body := getJSON(t, app, "/integrity")
	assert.Equal(t, 200, status)

	server, ok := body["server"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, server["matched"])

	reports, ok := body["reports"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "disabled", reports["status"])
}
