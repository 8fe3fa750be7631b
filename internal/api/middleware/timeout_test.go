package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bassista/rpi_configurator/internal/api/controller"
	"github.com/bassista/rpi_configurator/internal/cache"
	"github.com/bassista/rpi_configurator/internal/configuration"
	"github.com/bassista/rpi_configurator/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceStore(t *testing.T) (*cache.Store, string) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "servicemonitor.json")
	cfg, err := configuration.NewServiceMonitorConfiguration(file)
	require.NoError(t, err)
	store := cache.NewStore(cfg)
	store.Add(configuration.Service{ID: 1, Name: "web", Timeout: 30})
	return store, file
}

func TestRequestTimeout_DisabledForNonPositiveDuration(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		r := gin.New()
		r.Use(RequestTimeout(d))

		var hasDeadline bool
		r.GET("/services", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services", nil))

		assert.Equal(t, http.StatusOK, w.Code, "duration %v", d)
		assert.False(t, hasDeadline, "duration %v must not add a deadline", d)
	}
}

func TestRequestTimeout_SaveRouteWithinDeadline(t *testing.T) {
	hook := test.NewLocal(logger.Logger)
	store, file := newServiceStore(t)

	r := gin.New()
	r.POST("/services/save", RequestTimeout(5*time.Second), controller.NewServiceController(store).SaveServices)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/services/save", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.IsDirty())
	_, err := os.Stat(file)
	assert.NoError(t, err)
	for _, e := range hook.AllEntries() {
		assert.NotContains(t, e.Message, "timed out")
	}
}

func TestRequestTimeout_WrittenResponseIsKept(t *testing.T) {
	store, _ := newServiceStore(t)

	r := gin.New()
	r.POST("/services/save", RequestTimeout(time.Second), controller.NewServiceController(store).SaveServices)

	// The deadline has already passed when the handler runs; it still answers,
	// and the middleware must not replace a written response with 504.
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/services/save", nil).WithContext(ctx)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.IsDirty())
}

func TestRequestTimeout_SlowHandlerGets504AndWarning(t *testing.T) {
	hook := test.NewLocal(logger.Logger)

	r := gin.New()
	r.Use(RequestTimeout(30 * time.Millisecond))
	r.GET("/service/:index", func(c *gin.Context) {
		select {
		case <-time.After(time.Second):
			c.Status(http.StatusOK)
		case <-c.Request.Context().Done():
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/service/0", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.JSONEq(t, `{"error": "request timeout"}`, w.Body.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "http", entry.Data["component"])
	assert.Equal(t, "request timed out after 30ms: GET /service/0", entry.Message)
}
