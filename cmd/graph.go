package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ospfsim/ospfsim/config"
	"github.com/ospfsim/ospfsim/importer"
	"github.com/ospfsim/ospfsim/ospf"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Dump the derived topology graph in DOT format",
	Long: `graph loads the topology and writes the derived graph to stdout as a DOT
digraph. Transit networks show up as box-shaped pseudo-nodes; edge labels
carry the link cost.`,
	Args: cobra.NoArgs,
	RunE: dumpGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func dumpGraph(cmd *cobra.Command, args []string) error {
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	area, _, err := importer.BuildArea(conf)
	if err != nil {
		return err
	}

	g := area.Topology()
	w := os.Stdout

	fmt.Fprintln(w, "digraph area {")
	fmt.Fprintln(w, "\trankdir=LR;")

	for _, v := range g.Nodes() {
		if v.Kind == ospf.VertexNetwork {
			fmt.Fprintf(w, "\t%q [shape=box];\n", v.String())
		}
	}

	for _, from := range g.Nodes() {
		for _, to := range g.Neighbors(from) {
			cost, _ := g.Weight(from, to)
			fmt.Fprintf(w, "\t%q -> %q [label=\"%d\"];\n", from.String(), to.String(), cost)
		}
	}

	fmt.Fprintln(w, "}")

	return nil
}
