package importer

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospfsim/ospfsim/common"
	"github.com/ospfsim/ospfsim/config"
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
          address: 10.0.12.2
      - address: 10.0.100.1/24
        network: broadcast

  - router-id: 2.2.2.2
    interfaces:
      - address: 10.0.12.2/30
        network: point-to-point
        cost: 5
        neighbor:
          router-id: 1.1.1.1
          address: 10.0.12.1
      - address: 10.0.100.2/24
        network: broadcast

  - router-id: 3.3.3.3
    interfaces:
      - address: 10.0.100.3/24
        network: broadcast
`

func mustParse(t *testing.T, yaml string) *config.Config {
	t.Helper()

	conf, err := config.ParseConfig([]byte(yaml))
	require.NoError(t, err)

	return conf
}

func TestBuildAreaLSDB(t *testing.T) {
	area, routers, err := BuildArea(mustParse(t, topologyYAML))
	require.NoError(t, err)
	require.Len(t, routers, 3)

	// three RouterLSAs plus the segment's NetworkLSA
	require.Len(t, area.LSAs(), 4)

	var networks []*ospf.NetworkLSA
	for _, l := range area.LSAs() {
		if n, ok := l.(*ospf.NetworkLSA); ok {
			networks = append(networks, n)
		}
	}
	require.Len(t, networks, 1)

	// the DR is the highest interface address on the segment, 10.0.100.3
	n := networks[0]
	assert.Equal(t, "3.3.3.3", n.AdvertisingRouter.String())
	assert.Equal(t, netip.MustParseAddr("10.0.100.3"), n.LinkStateID)
	assert.Equal(t, netip.MustParseAddr("255.255.255.0"), n.NetworkMask)
	assert.Len(t, n.AttachedRouters, 3)
}

func TestBuildAreaDRElection(t *testing.T) {
	_, routers, err := BuildArea(mustParse(t, topologyYAML))
	require.NoError(t, err)

	for _, r := range routers {
		for _, iface := range r.Interfaces {
			if iface.Type != ospf.InterfaceBroadcast {
				continue
			}

			assert.Equal(t, "3.3.3.3", iface.DRID.String())
			assert.Equal(t, netip.MustParseAddr("10.0.100.3"), iface.DRAddr)

			if r.ID == 0x03030303 {
				assert.Equal(t, ospf.StateDR, iface.State)
			} else {
				assert.Equal(t, ospf.StateDROther, iface.State)
			}
		}
	}
}

func TestBuildAreaRoutes(t *testing.T) {
	area, _, err := BuildArea(mustParse(t, topologyYAML))
	require.NoError(t, err)

	r1, err := common.ParseRouterID("1.1.1.1")
	require.NoError(t, err)
	r2, err := common.ParseRouterID("2.2.2.2")
	require.NoError(t, err)
	r3, err := common.ParseRouterID("3.3.3.3")
	require.NoError(t, err)

	routes := area.Routes(r1)
	require.NotNil(t, routes)

	// the point-to-point link beats going around the segment
	assert.Equal(t, ospf.Route{Cost: 5, NextHop: r2}, routes[ospf.RouterVertex(r2)])

	// r3 is only reachable across the segment
	assert.Equal(t, ospf.Route{Cost: 10, NextHop: r3}, routes[ospf.RouterVertex(r3)])

	segment := ospf.NetworkVertex(netip.MustParsePrefix("10.0.100.0/24"))
	seg := routes[segment]
	assert.EqualValues(t, 10, seg.Cost)
	assert.True(t, seg.DirectlyConnected())
}

func TestBuildAreaPointToPointOnly(t *testing.T) {
	area, _, err := BuildArea(mustParse(t, `
routers:
  - router-id: 1.1.1.1
    interfaces:
      - address: 10.0.12.1/30
        network: point-to-point
        neighbor:
          router-id: 2.2.2.2
  - router-id: 2.2.2.2
    interfaces:
      - address: 10.0.12.2/30
        network: point-to-point
        neighbor:
          router-id: 1.1.1.1
`))
	require.NoError(t, err)

	// no broadcast segments, so no NetworkLSAs
	require.Len(t, area.LSAs(), 2)

	r1, _ := common.ParseRouterID("1.1.1.1")
	r2, _ := common.ParseRouterID("2.2.2.2")

	assert.Equal(t, ospf.Route{Cost: 10, NextHop: r2}, area.Routes(r1)[ospf.RouterVertex(r2)])
}

func TestBuildAreaDuplicateInterfaceAddress(t *testing.T) {
	_, _, err := BuildArea(mustParse(t, `
routers:
  - router-id: 1.1.1.1
    interfaces:
      - address: 10.0.0.1/24
      - address: 10.0.0.1/30
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate interface address")
}
