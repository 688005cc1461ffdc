// cellforge builds CW-complexes from blueprint files and exercises the
// construction engines from the command line: skeletal assembly, functor
// law verification, and homotopy extension evaluation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cellforge/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cellforge",
	Short: "cellforge - CW-complex construction engine",
	Long: `cellforge assembles topological spaces by iterative cell attachment.

Complexes are described in YAML blueprints: a base space plus one cell
family per dimension. The build command realizes the skeleta, verify
checks the inclusion functor laws through a Datalog derivation of the
proof obligations, and eval samples a built homotopy extension.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logging.Configure(logger)
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(buildCmd, verifyCmd, evalCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
