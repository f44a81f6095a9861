package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizclient/internal/prompt"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Take a quiz as a series of prompts",
	Long: `Ask every question as a line-oriented prompt, then submit and print
the results. Useful on terminals without full-screen support.`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl := newController(cfg, logger)
	driver := prompt.NewSurveyDriver(terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})

	err = prompt.Run(cmd.Context(), ctrl, driver)
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return nil
	}
	return err
}
