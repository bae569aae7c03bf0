package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospfsim/ospfsim/config"
	"github.com/ospfsim/ospfsim/importer"
	"github.com/ospfsim/ospfsim/ospf"
)

const topologyYAML = `
area: 0.0.0.0

routers:
  - router-id: 1.1.1.1
    interfaces:
      - address: 10.0.12.1/30
        network: point-to-point
        cost: 5
        neighbor:
          router-id: 2.2.2.2
  - router-id: 2.2.2.2
    interfaces:
      - address: 10.0.12.2/30
        network: point-to-point
        cost: 5
        neighbor:
          router-id: 1.1.1.1
`

func newTestHandler(t *testing.T) *echo.Echo {
	t.Helper()

	conf, err := config.ParseConfig([]byte(topologyYAML))
	require.NoError(t, err)

	area, _, err := importer.BuildArea(conf)
	require.NoError(t, err)

	s := NewServer("", func() *ospf.Area { return area })

	e := echo.New()
	s.register(e)

	return e
}

func get(t *testing.T, e *echo.Echo, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestGetArea(t *testing.T) {
	e := newTestHandler(t)

	rec := get(t, e, "/api/area")
	require.Equal(t, http.StatusOK, rec.Code)

	var got areaSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "0.0.0.0", got.AreaID)
	assert.Equal(t, 2, got.LSAs)
	assert.Equal(t, 2, got.Nodes)
	assert.Equal(t, 2, got.Edges)
}

func TestGetLSDB(t *testing.T) {
	e := newTestHandler(t)

	rec := get(t, e, "/api/area/lsdb")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []lsaSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "Router", got[0].Type)
	assert.Equal(t, "1.1.1.1", got[0].AdvertisingRouter)
	require.Len(t, got[0].Links, 1)
	assert.Equal(t, "Point-to-point", got[0].Links[0].Type)
	assert.Equal(t, "2.2.2.2", got[0].Links[0].ID)
}

func TestGetGraph(t *testing.T) {
	e := newTestHandler(t)

	rec := get(t, e, "/api/area/graph")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []edge
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.ElementsMatch(t, []edge{
		{From: "1.1.1.1", To: "2.2.2.2", Cost: 5},
		{From: "2.2.2.2", To: "1.1.1.1", Cost: 5},
	}, got)
}

func TestGetRouterRoutes(t *testing.T) {
	e := newTestHandler(t)

	rec := get(t, e, "/api/area/routes/1.1.1.1")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []route
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)

	assert.Equal(t, route{Destination: "2.2.2.2", Cost: 5, NextHop: "2.2.2.2"}, got[0])
}

func TestGetRouterRoutesBadID(t *testing.T) {
	e := newTestHandler(t)

	rec := get(t, e, "/api/area/routes/not-a-router")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRouterRoutesUnknownRouter(t *testing.T) {
	e := newTestHandler(t)

	rec := get(t, e, "/api/area/routes/9.9.9.9")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRoutes(t *testing.T) {
	e := newTestHandler(t)

	rec := get(t, e, "/api/area/routes")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string][]route
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	require.Contains(t, got, "1.1.1.1")
	require.Contains(t, got, "2.2.2.2")
	assert.Equal(t, route{Destination: "1.1.1.1", Cost: 5, NextHop: "1.1.1.1"}, got["2.2.2.2"][0])
}
