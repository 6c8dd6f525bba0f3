package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceandiag/ocean-diagnostics-go/internal/config"
	"github.com/oceandiag/ocean-diagnostics-go/internal/database"
	"github.com/oceandiag/ocean-diagnostics-go/internal/models"
	"github.com/oceandiag/ocean-diagnostics-go/internal/repository"
	"github.com/oceandiag/ocean-diagnostics-go/internal/service"
)

const testSecret = "test-secret"

var testRouter *gin.Engine

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "oceandiag-test")
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Init(database.Config{Path: filepath.Join(dir, "tasks.db")}); err != nil {
		log.Fatal(err)
	}

	cfg := &config.Config{Port: ":0", JWTSecret: testSecret}
	diagService := service.NewDiagnosticsService(nil)
	taskRepo := repository.NewAnalysisTaskRepository(database.GetDB())
	taskService := service.NewAnalysisTaskService(taskRepo, diagService)
	testRouter = SetupRouter(cfg, diagService, taskService)

	code := m.Run()

	database.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

// envelope is the standard response body shape.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func bearerToken(t *testing.T, secret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tester",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestHealth(t *testing.T) {
	w, _ := doJSON(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	w, _ := doJSON(t, http.MethodOptions, "/api/v1/spatial/radius", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRadiusEndpoint(t *testing.T) {
	lons := make([]float64, 16)
	lats := make([]float64, 16)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			lats[r*4+c] = 50 + float64(r)
			lons[r*4+c] = float64(c)
		}
	}

	t.Run("grid result", func(t *testing.T) {
		w, env := doJSON(t, http.MethodPost, "/api/v1/spatial/radius", gin.H{
			"rows": 4, "cols": 4,
			"lons":      lons,
			"lats":      lats,
			"centres":   []gin.H{{"lat": 51, "lon": 1}},
			"radius_km": 120,
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 0, env.Code)

		var resp models.RadiusQueryResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		require.Len(t, resp.GridIndices, 1)
		assert.NotEmpty(t, resp.GridIndices[0].Rows)
	})

	t.Run("missing radius rejected", func(t *testing.T) {
		w, _ := doJSON(t, http.MethodPost, "/api/v1/spatial/radius", gin.H{
			"rows": 4, "cols": 4,
			"lons":    lons,
			"lats":    lats,
			"centres": []gin.H{{"lat": 51, "lon": 1}},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("shape mismatch rejected", func(t *testing.T) {
		w, _ := doJSON(t, http.MethodPost, "/api/v1/spatial/radius", gin.H{
			"rows": 5, "cols": 5,
			"lons":      lons,
			"lats":      lats,
			"centres":   []gin.H{{"lat": 51, "lon": 1}},
			"radius_km": 120,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExtremaEndpoint(t *testing.T) {
	w, env := doJSON(t, http.MethodPost, "/api/v1/stats/extrema", gin.H{
		"x":      []float64{0, 1, 2, 3, 4},
		"y":      []float64{0, 1, 0, 1, 0},
		"method": "comparison",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ExtremaResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, models.Series{1, 3}, resp.X)
	assert.Equal(t, models.Series{1, 1}, resp.Y)
}

func TestTidalFilterEndpoint(t *testing.T) {
	series := make([]float64, 50)
	for i := range series {
		series[i] = 2
	}

	w, env := doJSON(t, http.MethodPost, "/api/v1/stats/tidal-filter", gin.H{
		"series": series,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Boundary samples come back as JSON nulls and decode to NaN.
	var resp models.TidalFilterResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Len(t, resp.Series, 50)
	assert.True(t, math.IsNaN(resp.Series[0]))
	assert.InDelta(t, 2.0, resp.Series[25], 1e-12)
}

func TestDistributionEndpointRejectsUnknownCurve(t *testing.T) {
	w, _ := doJSON(t, http.MethodPost, "/api/v1/stats/distribution", gin.H{
		"curve": "quantile",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskEndpoints(t *testing.T) {
	series := make([]float64, 45)
	createBody := gin.H{
		"diagnostic": models.DiagnosticDoodsonX0,
		"params":     gin.H{"series": series},
	}

	t.Run("create requires token", func(t *testing.T) {
		w, _ := doJSON(t, http.MethodPost, "/api/v1/tasks", createBody, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w, _ = doJSON(t, http.MethodPost, "/api/v1/tasks", createBody, map[string]string{
			"Authorization": bearerToken(t, "wrong-secret"),
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown diagnostic rejected", func(t *testing.T) {
		w, _ := doJSON(t, http.MethodPost, "/api/v1/tasks", gin.H{
			"diagnostic": "spectral_analysis",
		}, map[string]string{"Authorization": bearerToken(t, testSecret)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lifecycle", func(t *testing.T) {
		w, env := doJSON(t, http.MethodPost, "/api/v1/tasks", createBody, map[string]string{
			"Authorization": bearerToken(t, testSecret),
		})
		require.Equal(t, http.StatusOK, w.Code)

		var created models.AnalysisTask
		require.NoError(t, json.Unmarshal(env.Data, &created))
		require.NotZero(t, created.ID)
		assert.Equal(t, "tester", created.CreatedBy)

		var last models.AnalysisTask
		require.Eventually(t, func() bool {
			_, env := doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", created.ID), nil, nil)
			if err := json.Unmarshal(env.Data, &last); err != nil {
				return false
			}
			return last.Status == models.TaskStatusCompleted || last.Status == models.TaskStatusFailed
		}, 3*time.Second, 50*time.Millisecond)

		assert.Equal(t, models.TaskStatusCompleted, last.Status)
		assert.NotEmpty(t, last.ResultJSON)
	})

	t.Run("list", func(t *testing.T) {
		w, env := doJSON(t, http.MethodGet, "/api/v1/tasks?diagnostic="+models.DiagnosticDoodsonX0, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var listing struct {
			Data  []*models.AnalysisTask `json:"data"`
			Count int                    `json:"count"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &listing))
		assert.Equal(t, len(listing.Data), listing.Count)
		assert.NotEmpty(t, listing.Data)
	})

	t.Run("missing task", func(t *testing.T) {
		w, _ := doJSON(t, http.MethodGet, "/api/v1/tasks/999999", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w, _ := doJSON(t, http.MethodGet, "/api/v1/tasks/abc", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
