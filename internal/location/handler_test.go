package location

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Districts(ctx context.Context) ([]District, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]District), args.Error(1)
}

func (m *MockProvider) Wards(ctx context.Context, districtID int64) ([]Ward, error) {
	args := m.Called(ctx, districtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Ward), args.Error(1)
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func serve(t *testing.T, p Provider, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	r := mux.NewRouter()
	NewHandler(p).RegisterRoutes(r.PathPrefix("/api").Subrouter())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestHandler_GetDistricts(t *testing.T) {
	p := new(MockProvider)
	p.On("Districts", mock.Anything).Return([]District{
		{Name: "Quận 1", Type: DistrictUrban, DistrictID: 1442},
	}, nil)

	w, env := serve(t, p, "/api/location/districts")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "districts retrieved", env.Message)
	assert.JSONEq(t, `[{"name":"Quận 1","type":"urban district","districtId":1442}]`, string(env.Data))
	p.AssertExpectations(t)
}

func TestHandler_GetDistricts_UpstreamError(t *testing.T) {
	p := new(MockProvider)
	p.On("Districts", mock.Anything).Return(nil, errors.Join(ErrRequestFailed, errors.New("Token is not valid")))

	w, env := serve(t, p, "/api/location/districts")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to fetch districts", env.Message)
	assert.Contains(t, env.Error, "Token is not valid")
}

func TestHandler_GetWards(t *testing.T) {
	p := new(MockProvider)
	p.On("Wards", mock.Anything, int64(1442)).Return([]Ward{
		{Name: "Phường Bến Nghé", Type: WardWard},
	}, nil)

	w, env := serve(t, p, "/api/location/wards?district_id=1442")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"Phường Bến Nghé","type":"ward"}]`, string(env.Data))
	p.AssertExpectations(t)
}

func TestHandler_GetWards_InvalidDistrict(t *testing.T) {
	for _, path := range []string{
		"/api/location/wards",
		"/api/location/wards?district_id=",
		"/api/location/wards?district_id=abc",
	} {
		p := new(MockProvider)
		w, env := serve(t, p, path)

		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, ErrInvalidDistrictID.Error(), env.Message)
		p.AssertNotCalled(t, "Wards", mock.Anything, mock.Anything)
	}
}

func TestHandler_GetWards_UpstreamError(t *testing.T) {
	p := new(MockProvider)
	p.On("Wards", mock.Anything, int64(7)).Return(nil, ErrProviderUnreachable)

	w, env := serve(t, p, "/api/location/wards?district_id=7")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrProviderUnreachable.Error(), env.Error)
}
