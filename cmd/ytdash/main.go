package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ytdash",
		Short:         "Dashboard over the top YouTube trending channels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(serveCmd())
	root.AddCommand(channelsCmd())
	root.AddCommand(exportCmd())

	return root
}

func serveCmd() *cobra.Command {
	var (
		port     int
		dataPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, dataPath)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	cmd.Flags().StringVar(&dataPath, "data", "", "trending CSV path (default: from config)")
	return cmd
}

func channelsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List the prepared channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChannels(cmd.OutOrStdout(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		out    string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the prepared table to a SQLite file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), out, verify)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "SQLite output path (default: from config)")
	cmd.Flags().BoolVar(&verify, "verify", false, "read the export back and compare it with the dataset")
	return cmd
}
