// Package api exposes a read-only HTTP/JSON view of an area: its LSDB, the
// derived topology graph, and the routing tables. It never mutates the area.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/ospfsim/ospfsim/common"
	"github.com/ospfsim/ospfsim/ospf"
)

// AreaProvider hands the server the area to serve. The daemon swaps areas
// wholesale on topology reload, so handlers fetch the current one per
// request instead of holding a pointer.
type AreaProvider func() *ospf.Area

type Server struct {
	addr string
	area AreaProvider
}

func NewServer(addr string, area AreaProvider) *Server {
	return &Server{
		addr: addr,
		area: area,
	}
}

func (s *Server) Run(ctx context.Context) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s.register(e)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := e.Start(s.addr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		return e.Shutdown(context.Background())
	})

	return g.Wait()
}

func (s *Server) register(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/area", s.getArea)
	api.GET("/area/lsdb", s.getLSDB)
	api.GET("/area/graph", s.getGraph)
	api.GET("/area/routes", s.getRoutes)
	api.GET("/area/routes/:router", s.getRouterRoutes)
}

type areaSummary struct {
	AreaID string `json:"area_id"`
	LSAs   int    `json:"lsas"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
}

func (s *Server) getArea(c echo.Context) error {
	area := s.area()
	g := area.Topology()

	return c.JSON(http.StatusOK, areaSummary{
		AreaID: area.ID.String(),
		LSAs:   len(area.LSAs()),
		Nodes:  g.Len(),
		Edges:  g.EdgeCount(),
	})
}

type lsaSummary struct {
	Type              string   `json:"type"`
	LinkStateID       string   `json:"link_state_id"`
	AdvertisingRouter string   `json:"advertising_router"`
	SequenceNumber    int32    `json:"sequence_number"`
	Length            uint16   `json:"length"`
	Links             []link   `json:"links,omitempty"`
	NetworkMask       string   `json:"network_mask,omitempty"`
	AttachedRouters   []string `json:"attached_routers,omitempty"`
}

type link struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Data   string `json:"data"`
	Metric uint16 `json:"metric"`
}

func (s *Server) getLSDB(c echo.Context) error {
	var lsas []lsaSummary

	for _, l := range s.area().LSAs() {
		h := l.Header()

		summary := lsaSummary{
			Type:              h.Type.String(),
			LinkStateID:       h.LinkStateID.String(),
			AdvertisingRouter: h.AdvertisingRouter.String(),
			SequenceNumber:    h.SequenceNumber,
			Length:            h.Length,
		}

		switch lsa := l.(type) {
		case *ospf.RouterLSA:
			for _, lnk := range lsa.Links {
				summary.Links = append(summary.Links, link{
					Type:   lnk.Type.String(),
					ID:     lnk.ID.String(),
					Data:   lnk.Data.String(),
					Metric: lnk.Metric,
				})
			}
		case *ospf.NetworkLSA:
			summary.NetworkMask = lsa.NetworkMask.String()
			for _, id := range lsa.AttachedRouters {
				summary.AttachedRouters = append(summary.AttachedRouters, id.String())
			}
		}

		lsas = append(lsas, summary)
	}

	return c.JSON(http.StatusOK, lsas)
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Cost uint32 `json:"cost"`
}

func (s *Server) getGraph(c echo.Context) error {
	g := s.area().Topology()

	var edges []edge
	for _, from := range g.Nodes() {
		for _, to := range g.Neighbors(from) {
			cost, _ := g.Weight(from, to)
			edges = append(edges, edge{From: from.String(), To: to.String(), Cost: cost})
		}
	}

	return c.JSON(http.StatusOK, edges)
}

type route struct {
	Destination string `json:"destination"`
	Cost        uint32 `json:"cost"`
	NextHop     string `json:"next_hop,omitempty"`
	Direct      bool   `json:"direct,omitempty"`
}

func (s *Server) getRoutes(c echo.Context) error {
	tables := make(map[string][]route)

	for src, routes := range s.area().RoutingTable() {
		tables[src.String()] = routeList(routes)
	}

	return c.JSON(http.StatusOK, tables)
}

func (s *Server) getRouterRoutes(c echo.Context) error {
	id, err := common.ParseRouterID(c.Param("router"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	routes := s.area().Routes(id)
	if routes == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no routes for router " + id.String()})
	}

	return c.JSON(http.StatusOK, routeList(routes))
}

func routeList(routes map[ospf.Vertex]ospf.Route) []route {
	out := make([]route, 0, len(routes))

	for dest, r := range routes {
		entry := route{
			Destination: dest.String(),
			Cost:        r.Cost,
		}

		if r.DirectlyConnected() {
			entry.Direct = true
		} else {
			entry.NextHop = r.NextHop.String()
		}

		out = append(out, entry)
	}

	slices.SortFunc(out, func(a, b route) int {
		return strings.Compare(a.Destination, b.Destination)
	})

	return out
}
