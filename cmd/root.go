package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "ospfsim",
	Short: "Intra-area OSPF link-state simulator",
	Long: `ospfsim builds an OSPF area from a declarative topology file, floods the
routers' LSAs into a link-state database, and computes every router's
routing table with Dijkstra over the derived topology graph.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once, by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ospfsim.yaml", "path to the topology file")
}
