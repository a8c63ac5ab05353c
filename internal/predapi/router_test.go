package predapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"machinery-gateway/internal/classifier"
)

func newTestServer(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	modelPath := filepath.Join(t.TempDir(), "model.gob")
	handler := NewHandler(classifier.New(), modelPath)
	return NewRouter(handler), modelPath
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthReportsModelState(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status      string `json:"status"`
		ModelLoaded bool   `json:"model_loaded"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.False(t, body.ModelLoaded)

	// Training flips the flag.
	w = doJSON(t, r, http.MethodPost, "/api/v1/train", map[string]any{
		"features": [][]float64{{0, 0}, {10, 10}},
		"labels":   []float64{0, 1},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/health", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.ModelLoaded)
}

func TestPredictBeforeTraining(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/predict", map[string]any{
		"features": []float64{1, 2},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "not trained")
}

func TestPredictValidation(t *testing.T) {
	r, _ := newTestServer(t)

	// Missing features.
	w := doJSON(t, r, http.MethodPost, "/api/v1/predict", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrainThenPredict(t *testing.T) {
	r, modelPath := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/train", map[string]any{
		"features": [][]float64{{0, 0}, {0.4, 0.1}, {10, 10}, {9.8, 10.1}},
		"labels":   []float64{0, 0, 1, 1},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var trained struct {
		Status  string `json:"status"`
		Metrics struct {
			Accuracy float64 `json:"accuracy"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trained))
	assert.Equal(t, "success", trained.Status)
	assert.Equal(t, 1.0, trained.Metrics.Accuracy)

	w = doJSON(t, r, http.MethodPost, "/api/v1/predict", map[string]any{
		"features": []float64{9.9, 9.9},
		"metadata": map[string]any{"source": "test"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var pred struct {
		Prediction float64        `json:"prediction"`
		Confidence float64        `json:"confidence"`
		Metadata   map[string]any `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pred))
	assert.Equal(t, 1.0, pred.Prediction)
	assert.Greater(t, pred.Confidence, 0.5)
	assert.EqualValues(t, 2, pred.Metadata["features_count"])

	// The trained model was persisted and reloads as trained.
	loaded, err := classifier.Load(modelPath)
	require.NoError(t, err)
	assert.True(t, loaded.Trained())
}
