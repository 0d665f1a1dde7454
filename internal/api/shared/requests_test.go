package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string   `json:"name"  validate:"required"`
	Price *float64 `json:"price"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"flat","price":10}`, false},
		{"missing optional field", `{"name":"flat"}`, false},
		{"malformed", `{"name":"flat",}`, true},
		{"empty body", ``, true},
		{"unknown field", `{"name":"flat","isDeleted":true}`, true},
		{"trailing data", `{"name":"flat"}{"name":"again"}`, true},
		{"wrong type", `{"name":"flat","price":"cheap"}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var out sampleRequest
			err := DecodeJSON(req, &out)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "flat", out.Name)
		})
	}
}

func TestDecodeJSONDistinguishesAbsentFromZero(t *testing.T) {
	t.Parallel()

	var absent, zero sampleRequest
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`)), &absent))
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","price":0}`)), &zero))

	assert.Nil(t, absent.Price)
	require.NotNil(t, zero.Price)
	assert.Equal(t, 0.0, *zero.Price)
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if s.ok {
		return nil
	}
	return assert.AnError
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(sampleRequest{Name: "x"}))
	assert.Error(t, ValidateRequest(sampleRequest{}))
	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{}), assert.AnError)
}
