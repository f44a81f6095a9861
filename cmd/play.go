package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take a quiz in the full-screen client",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
