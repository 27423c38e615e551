// Package cmd implements the nav command line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/navfs/navigator/internal/dispatch"
	"github.com/navfs/navigator/internal/logging"
)

var (
	startDir string
	compact  bool
)

var rootCmd = &cobra.Command{
	Use:   "nav <command> [args...]",
	Short: "File navigation and command engine CLI",
	Long: `nav runs one navigation or file command and prints the result as JSON.

Run "nav commands" to list the available commands. Engine failures are
reported inside the JSON payload; a nonzero exit means the invocation
itself was unusable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		if strings.EqualFold(args[0], "commands") {
			return printJSON(map[string]interface{}{"commands": dispatch.Commands()})
		}

		session, err := dispatch.NewSession(startDir, logging.Nop().Logger)
		if err != nil {
			return err
		}
		result := session.Dispatch(c.Context(), args[0], args[1:])
		return printJSON(result)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&startDir, "dir", "d", "", "Starting directory (default: working directory)")
	rootCmd.PersistentFlags().BoolVar(&compact, "compact", false, "Print compact JSON")
	rootCmd.Flags().SetInterspersed(false)
}

func printJSON(v interface{}) error {
	var (
		out []byte
		err error
	)
	if compact {
		out, err = sonic.Marshal(v)
	} else {
		out, err = sonic.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
