package rest

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("should write status and body", func(t *testing.T) {
		w := httptest.NewRecorder()

		WriteJSON(w, http.StatusCreated, map[string]int{"id": 3})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":3}`, w.Body.String())
	})

	t.Run("should fail with 500 when body cannot be encoded", func(t *testing.T) {
		w := httptest.NewRecorder()

		WriteJSON(w, http.StatusOK, map[string]float64{"amount": math.Inf(1)})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var errResponse ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.NotEmpty(t, errResponse.Error)
	})
}
