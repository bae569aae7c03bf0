// Package config loads and validates the YAML topology description that
// feeds the simulator: one area, its routers, and their interfaces.
package config

import (
	"fmt"
	"math"
	"net/netip"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ospfsim/ospfsim/common"
)

const (
	defaultCost          = 10
	defaultHelloInterval = 10
	defaultDeadInterval  = 40
	defaultPriority      = 1
)

type NetworkType string

const (
	NetworkPointToPoint NetworkType = "point-to-point"
	NetworkBroadcast    NetworkType = "broadcast"
)

type Config struct {
	AreaID  common.AreaID
	Routers []RouterConfig
}

type RouterConfig struct {
	RouterID   common.RouterID
	Interfaces []InterfaceConfig
}

type InterfaceConfig struct {
	Prefix        netip.Prefix
	Network       NetworkType
	Cost          uint16
	HelloInterval uint16
	DeadInterval  uint16
	Priority      uint8
	Neighbor      *NeighborConfig
}

type NeighborConfig struct {
	RouterID common.RouterID
	Addr     netip.Addr
}

// raw yaml shapes; validation happens when converting to Config.

type yamlTopology struct {
	Area    string       `yaml:"area"`
	Routers []yamlRouter `yaml:"routers"`
}

type yamlRouter struct {
	RouterID   string          `yaml:"router-id"`
	Interfaces []yamlInterface `yaml:"interfaces"`
}

type yamlInterface struct {
	Address       string        `yaml:"address"`
	Network       string        `yaml:"network"`
	Cost          int           `yaml:"cost"`
	HelloInterval int           `yaml:"hello-interval"`
	DeadInterval  int           `yaml:"dead-interval"`
	Priority      int           `yaml:"priority"`
	Neighbor      *yamlNeighbor `yaml:"neighbor"`
}

type yamlNeighbor struct {
	RouterID string `yaml:"router-id"`
	Address  string `yaml:"address"`
}

func LoadConfig(path string) (*Config, error) {
	s, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(s)
}

func ParseConfig(data []byte) (*Config, error) {
	var raw yamlTopology

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ospfsim: %w", err)
	}

	if raw.Area == "" {
		raw.Area = "0.0.0.0"
	}

	areaID, err := common.ParseAreaID(raw.Area)
	if err != nil {
		return nil, fmt.Errorf("ospfsim: %w", err)
	}

	c := &Config{AreaID: areaID}

	if len(raw.Routers) == 0 {
		return nil, fmt.Errorf("ospfsim: at least one router must be configured")
	}

	seen := make(map[common.RouterID]bool)
	for _, r := range raw.Routers {
		rc, err := parseRouter(r)
		if err != nil {
			return nil, err
		}

		if seen[rc.RouterID] {
			return nil, fmt.Errorf("ospfsim: duplicate router id %s", rc.RouterID)
		}
		seen[rc.RouterID] = true

		c.Routers = append(c.Routers, *rc)
	}

	return c, nil
}

func parseRouter(raw yamlRouter) (*RouterConfig, error) {
	if raw.RouterID == "" {
		return nil, fmt.Errorf("ospfsim: router-id must be set")
	}

	id, err := common.ParseRouterID(raw.RouterID)
	if err != nil {
		return nil, fmt.Errorf("ospfsim: %w", err)
	}

	rc := &RouterConfig{RouterID: id}

	for _, i := range raw.Interfaces {
		ic, err := parseInterface(raw.RouterID, i)
		if err != nil {
			return nil, err
		}

		rc.Interfaces = append(rc.Interfaces, *ic)
	}

	return rc, nil
}

func parseInterface(routerName string, raw yamlInterface) (*InterfaceConfig, error) {
	prefix, err := netip.ParsePrefix(raw.Address)
	if err != nil {
		return nil, fmt.Errorf("ospfsim: router %s: invalid interface address %q: %w", routerName, raw.Address, err)
	}

	if !prefix.Addr().Is4() {
		return nil, fmt.Errorf("ospfsim: router %s: interface address %q must be IPv4", routerName, raw.Address)
	}

	ic := &InterfaceConfig{
		Prefix:        prefix,
		Cost:          defaultCost,
		HelloInterval: defaultHelloInterval,
		DeadInterval:  defaultDeadInterval,
		Priority:      defaultPriority,
	}

	switch NetworkType(raw.Network) {
	case NetworkPointToPoint, NetworkBroadcast:
		ic.Network = NetworkType(raw.Network)
	case "":
		ic.Network = NetworkBroadcast
	default:
		return nil, fmt.Errorf("ospfsim: router %s interface %s: unknown network type %q", routerName, raw.Address, raw.Network)
	}

	if raw.Cost != 0 {
		if raw.Cost < 1 || raw.Cost > math.MaxUint16 {
			return nil, fmt.Errorf("ospfsim: router %s interface %s: cost out of range: %d", routerName, raw.Address, raw.Cost)
		}

		ic.Cost = uint16(raw.Cost)
	}

	if raw.HelloInterval != 0 {
		if raw.HelloInterval < 1 || raw.HelloInterval > math.MaxUint16 {
			return nil, fmt.Errorf("ospfsim: router %s interface %s: hello-interval out of range: %d", routerName, raw.Address, raw.HelloInterval)
		}

		ic.HelloInterval = uint16(raw.HelloInterval)
	}

	if raw.DeadInterval != 0 {
		if raw.DeadInterval < 1 || raw.DeadInterval > math.MaxUint16 {
			return nil, fmt.Errorf("ospfsim: router %s interface %s: dead-interval out of range: %d", routerName, raw.Address, raw.DeadInterval)
		}

		ic.DeadInterval = uint16(raw.DeadInterval)
	}

	if raw.Priority != 0 {
		if raw.Priority < 0 || raw.Priority > math.MaxUint8 {
			return nil, fmt.Errorf("ospfsim: router %s interface %s: priority out of range: %d", routerName, raw.Address, raw.Priority)
		}

		ic.Priority = uint8(raw.Priority)
	}

	switch ic.Network {
	case NetworkPointToPoint:
		if raw.Neighbor == nil {
			return nil, fmt.Errorf("ospfsim: router %s interface %s: point-to-point interface needs a neighbor", routerName, raw.Address)
		}

		nc, err := parseNeighbor(routerName, raw.Address, *raw.Neighbor)
		if err != nil {
			return nil, err
		}

		ic.Neighbor = nc
	case NetworkBroadcast:
		if raw.Neighbor != nil {
			return nil, fmt.Errorf("ospfsim: router %s interface %s: neighbor is only valid on point-to-point interfaces", routerName, raw.Address)
		}
	}

	return ic, nil
}

func parseNeighbor(routerName, ifaceName string, raw yamlNeighbor) (*NeighborConfig, error) {
	if raw.RouterID == "" {
		return nil, fmt.Errorf("ospfsim: router %s interface %s: neighbor router-id must be set", routerName, ifaceName)
	}

	id, err := common.ParseRouterID(raw.RouterID)
	if err != nil {
		return nil, fmt.Errorf("ospfsim: router %s interface %s: %w", routerName, ifaceName, err)
	}

	nc := &NeighborConfig{RouterID: id}

	if raw.Address != "" {
		addr, err := netip.ParseAddr(raw.Address)
		if err != nil {
			return nil, fmt.Errorf("ospfsim: router %s interface %s: invalid neighbor address %q: %w", routerName, ifaceName, raw.Address, err)
		}

		nc.Addr = addr
	}

	return nc, nil
}
