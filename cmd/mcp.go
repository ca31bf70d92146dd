package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/internal/mcp"
	"github.com/chingu-voyage/heartbeat/internal/runstore"
)

// mcpSetup runs setup without requiring an event feed on the command line;
// MCP tools receive their file paths per call.
func mcpSetup(_ *cobra.Command, args []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := contract.ProcessAndValidateBase(cfg, input); err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.EventsFile = args[0]
	}
	if err := runstore.InitStore(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}
	return nil
}

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp [events-file]",
	Short:   "Start the Heartbeat MCP server",
	Long:    `Launch an MCP server that allows AI agents to compute member and team metrics via standard tools.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: mcpSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
