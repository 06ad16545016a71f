package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexknot/adapters/memory"
	"flexknot/adapters/spline"
	"flexknot/app"
	"flexknot/domain/dataset"
	"flexknot/domain/likelihood"
	"flexknot/domain/proposal"
	"flexknot/ports"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	spec, err := dataset.NewSpectrum(
		[]float64{50, 60, 70, 80, 90},
		[]float64{3.5, 3.5, 3.5, 3.5, 3.5},
	)
	require.NoError(t, err)

	cfg := likelihood.DefaultConfig(0)
	cfg.NewInterpolator = func() ports.InterpolatorPort { return spline.NewMonotone() }
	engine, err := likelihood.NewEngine(spec, cfg)
	require.NoError(t, err)

	block, err := proposal.NewBlock(0, proposal.Prior{Min: -1, Max: 1},
		proposal.DefaultForegroundPriors(5), spec.FreqMin(), spec.FreqMax())
	require.NoError(t, err)

	ledger := memory.NewLedger(100)
	return NewRouter(Deps{
		Evaluation: app.NewEvaluationService(engine, ledger),
		Sweep:      app.NewSweepService(engine, ledger, 2),
		Report:     app.NewReportService(engine, spec, ledger),
		Engine:     engine,
		Spectrum:   spec,
		Block:      block,
	})
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEvaluateEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/evaluate", gin.H{
		"names":  []string{"fy_f", "fy_l", "a_0", "a_1", "a_2", "a_3", "a_4"},
		"values": []float64{3.5, 3.5, 0, 0, 0, 0, 0},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID            string  `json:"id"`
		LogLikelihood float64 `json:"log_likelihood"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Greater(t, resp.LogLikelihood, 0.0) // small sigma, exact fit
}

func TestEvaluateRejectsBadProposal(t *testing.T) {
	router := testRouter(t)

	// Wrong size: order 0 needs 7 parameters.
	w := postJSON(t, router, "/api/v1/evaluate", gin.H{
		"names":  []string{"fy_f"},
		"values": []float64{3.5},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_PROPOSAL")
}

func TestEvaluateRejectsMissingBody(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchemaEndpoint(t *testing.T) {
	router := testRouter(t)

	w := getPath(router, "/api/v1/schema")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Order      int      `json:"order"`
		Size       int      `json:"size"`
		Names      []string `json:"names"`
		Foreground string   `json:"foreground"`
		LeftEdge   float64  `json:"left_edge"`
		RightEdge  float64  `json:"right_edge"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Order)
	assert.Equal(t, 7, resp.Size)
	assert.Equal(t, "edges_power_law", resp.Foreground)
	assert.InDelta(t, 49.9, resp.LeftEdge, 1e-12)
	assert.InDelta(t, 90.1, resp.RightEdge, 1e-12)
	assert.Equal(t, []string{"fy_f", "fy_l", "a_0", "a_1", "a_2", "a_3", "a_4"}, resp.Names)
}

func TestTransformEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/transform", gin.H{
		"unit": []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Names  []string  `json:"names"`
		Values []float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Values, 7)
	assert.InDelta(t, 0.0, resp.Values[0], 1e-12) // mid unit knot range [-1, 1]
	assert.InDelta(t, 0.0, resp.Values[2], 1e-6)  // mid foreground prior

	// Transformed draws must decode on the matching engine.
	w2 := postJSON(t, router, "/api/v1/evaluate", gin.H{"names": resp.Names, "values": resp.Values})
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestTransformRejectsOutOfRangeDraw(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/transform", gin.H{
		"unit": []float64{1.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDatasetEndpoint(t *testing.T) {
	router := testRouter(t)

	w := getPath(router, "/api/v1/dataset")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Samples  int     `json:"samples"`
		FreqMin  float64 `json:"freq_min"`
		FreqMax  float64 `json:"freq_max"`
		TempMean float64 `json:"temp_mean"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Samples)
	assert.Equal(t, 50.0, resp.FreqMin)
	assert.Equal(t, 90.0, resp.FreqMax)
	assert.InDelta(t, 3.5, resp.TempMean, 1e-12)
}

func TestSweepEndpoint(t *testing.T) {
	router := testRouter(t)

	names := []string{"fy_f", "fy_l", "a_0", "a_1", "a_2", "a_3", "a_4"}
	w := postJSON(t, router, "/api/v1/sweep", gin.H{
		"proposals": []gin.H{
			{"names": names, "values": []float64{3.5, 3.5, 0, 0, 0, 0, 0}},
			{"names": []string{"fy_f"}, "values": []float64{1}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Evaluated int `json:"evaluated"`
		Failed    int `json:"failed"`
		Results   []struct {
			Index int  `json:"index"`
			OK    bool `json:"ok"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Evaluated)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].OK)
	assert.False(t, resp.Results[1].OK)
}

func TestReportEndpoint(t *testing.T) {
	router := testRouter(t)

	// Empty ledger first.
	w := getPath(router, "/api/v1/report")
	assert.Equal(t, http.StatusNotFound, w.Code)

	postJSON(t, router, "/api/v1/evaluate", gin.H{
		"names":  []string{"fy_f", "fy_l", "a_0", "a_1", "a_2", "a_3", "a_4"},
		"values": []float64{3.5, 3.5, 0, 0, 0, 0, 0},
	})

	w = getPath(router, "/api/v1/report")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# Flexknot fit report")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/report", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1")
}

func TestHealthz(t *testing.T) {
	router := testRouter(t)
	w := getPath(router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}
