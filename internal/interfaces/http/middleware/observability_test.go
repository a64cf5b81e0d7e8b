package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("http.server")))
	router.GET("/api/v1/products/:id", func(c *gin.Context) { c.String(http.StatusNotFound, "missing") })

	serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/products/def", nil))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	total := findMetric(rm, "http_server_request_total")
	require.NotNil(t, total)
	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)

	route, ok := sum.DataPoints[0].Attributes.Value("http.route")
	require.True(t, ok)
	assert.Equal(t, "/api/v1/products/:id", route.AsString())
	status, _ := sum.DataPoints[0].Attributes.Value("http.status_code")
	assert.Equal(t, int64(http.StatusNotFound), status.AsInt64())

	assert.NotNil(t, findMetric(rm, "http_server_request_duration_seconds"))
	assert.NotNil(t, findMetric(rm, "http_server_response_size_bytes"))
}

func TestHTTPMetrics_NilMeter(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/test", nil)).Code)
}

func TestTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	router := gin.New()
	router.Use(RequestID(), Tracing(TracingConfig{ServiceName: "shop-test", Enabled: true}), SpanEnricher())
	router.GET("/api/v1/accounts/me", func(c *gin.Context) {
		c.Set(JWTUserIDKey, "user-1")
		c.Status(http.StatusForbidden)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/me", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	serve(router, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Contains(t, span.Name, "/api/v1/accounts/me")
	assert.Equal(t, codes.Error, span.Status.Code)

	attrs := map[string]string{}
	for _, kv := range span.Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "req-42", attrs["request_id"])
	assert.Equal(t, "user-1", attrs["user_id"])
}

func TestTracing_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false}), SpanEnricher())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/test", nil)).Code)
}

func TestProfiling_LabelsRequest(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(ProfilingConfig{Enabled: true, SkipPathPrefixes: []string{"/swagger"}}))

	var labels map[string]string
	router.GET("/api/v1/products/:id/photo", func(c *gin.Context) {
		labels = map[string]string{}
		pprof.ForLabels(c.Request.Context(), func(k, v string) bool {
			labels[k] = v
			return true
		})
		c.Status(http.StatusOK)
	})
	router.GET("/swagger/*any", func(c *gin.Context) {
		labels = map[string]string{}
		pprof.ForLabels(c.Request.Context(), func(k, v string) bool {
			labels[k] = v
			return true
		})
		c.Status(http.StatusOK)
	})

	serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/products/abc/photo", nil))
	assert.Equal(t, http.MethodGet, labels[ProfilingLabelMethod])
	assert.Equal(t, "/api/v1/products/:id/photo", labels[ProfilingLabelRoute])
	assert.Equal(t, "products", labels[ProfilingLabelController])

	serve(router, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Empty(t, labels)
}

func TestControllerOf(t *testing.T) {
	tests := map[string]string{
		"/api/v1/products/:id":                       "products",
		"/api/v1/locations/areas/:id/chain":          "locations",
		"/api/v2/transfers":                          "transfers",
		"/health":                                    "health",
		"/api/v1/:id":                                "",
		"":                                           "",
		"/api/version/products":                      "version",
		"/api/v1/products/:id/stores/:storeId/stock": "products",
	}
	for route, want := range tests {
		assert.Equal(t, want, controllerOf(route), route)
	}
}
