package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ospfsim/ospfsim/common"
	"github.com/ospfsim/ospfsim/config"
	"github.com/ospfsim/ospfsim/importer"
	"github.com/ospfsim/ospfsim/ospf"
)

var routesCmd = &cobra.Command{
	Use:   "routes [router-id]",
	Short: "Print routing tables for the configured topology",
	Long: `routes loads the topology, runs the shortest-path computation, and prints
each router's routing table. With a router id argument, only that router's
table is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: printRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func printRoutes(cmd *cobra.Command, args []string) error {
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	area, _, err := importer.BuildArea(conf)
	if err != nil {
		return err
	}

	tables := area.RoutingTable()

	var sources []common.RouterID
	if len(args) == 1 {
		id, err := common.ParseRouterID(args[0])
		if err != nil {
			return err
		}

		if _, ok := tables[id]; !ok {
			return fmt.Errorf("router %s is not in area %s", id, area.ID)
		}

		sources = []common.RouterID{id}
	} else {
		sources = maps.Keys(tables)
		slices.Sort(sources)
	}

	for i, src := range sources {
		if i > 0 {
			fmt.Println()
		}

		fmt.Printf("Router %s\n", src)
		printRouterTable(tables[src])
	}

	return nil
}

func printRouterTable(routes map[ospf.Vertex]ospf.Route) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Destination", "Type", "Cost", "Next Hop"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)

	dests := maps.Keys(routes)
	slices.SortFunc(dests, func(a, b ospf.Vertex) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, dest := range dests {
		r := routes[dest]

		kind := "router"
		if dest.Kind == ospf.VertexNetwork {
			kind = "network"
		}

		nextHop := "direct"
		if !r.DirectlyConnected() {
			nextHop = r.NextHop.String()
		}

		table.Append([]string{dest.String(), kind, strconv.FormatUint(uint64(r.Cost), 10), nextHop})
	}

	table.Render()
}
