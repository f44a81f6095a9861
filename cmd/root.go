package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizclient",
	Short: "Terminal client for a quiz server",
	Long: `quizclient fetches a quiz from a quiz server, lets you answer it,
submits the answers for grading and shows the results.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file (overrides QUIZCLIENT_CONFIG env var)")
	flags.String("env-file", ".env", "Path to a dotenv file; ignored when missing")
	flags.String("server", "", "Quiz server base URL (overrides server_url)")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("export", "", "Append every grade to this .xlsx workbook")
	flags.Duration("timeout", 0, "Per-request timeout, e.g. 10s (0 keeps the configured value)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
}
