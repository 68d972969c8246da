package catalogservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AtelierService/pkg/logger"
)

func TestGetPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		switch r.URL.Path {
		case "/internal/catalog/services/repair/price":
			var req PriceRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "zipper", req.Selections["kind"])
			_ = json.NewEncoder(w).Encode(PriceResponse{Price: 350.5})
		case "/internal/catalog/services/rental/price":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":422,"message":"size is required"}`))
		case "/internal/catalog/services/broken/price":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	price, err := client.GetPrice(ctx, "repair", map[string]string{"kind": "zipper"})
	require.NoError(t, err)
	assert.InDelta(t, 350.5, price, 1e-9)

	_, err = client.GetPrice(ctx, "rental", nil)
	assert.ErrorIs(t, err, ErrInvalidSelections)

	_, err = client.GetPrice(ctx, "tailoring", nil)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = client.GetPrice(ctx, "broken", nil)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
