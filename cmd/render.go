package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizclient/internal/quiz"
	"github.com/abhisek/quizclient/internal/session"
	"github.com/abhisek/quizclient/internal/view"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the quiz page as a static HTML document",
	Long: `Render the quiz page to HTML. The quiz comes from --quiz or, when
omitted, from the server. --result adds a stored POST /grade response to the
results area.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("quiz", "", "Read the quiz from this JSON file instead of the server")
	renderCmd.Flags().String("result", "", "Show this JSON grade response in the results area")
	renderCmd.Flags().StringP("out", "o", "", "Write the document here instead of stdout")
	renderCmd.Flags().String("title", "Quiz", "Document title")
}

func runRender(cmd *cobra.Command, args []string) error {
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

	quizPath, _ := cmd.Flags().GetString("quiz")
	if quizPath != "" {
		q, err := readQuiz(quizPath, cfg.ValidateQuiz)
		if err != nil {
			return err
		}
		ctrl.Apply(q)
	} else if err := ctrl.Start(cmd.Context()); err != nil {
		return err
	}

	if resultPath, _ := cmd.Flags().GetString("result"); resultPath != "" {
		data, err := os.ReadFile(resultPath)
		if err != nil {
			return fmt.Errorf("read result: %w", err)
		}
		res, err := quiz.DecodeGradeResult(data)
		if err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
		ctrl.ApplyGrade(res, nil)
	}

	title, _ := cmd.Flags().GetString("title")
	outPath, _ := cmd.Flags().GetString("out")
	return writeDocument(outPath, title, ctrl)
}

func readQuiz(path string, validate bool) (*quiz.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}
	if validate {
		if err := quiz.ValidateQuizPayload(data); err != nil {
			return nil, err
		}
	}
	return quiz.DecodeQuiz(data)
}

func writeDocument(path, title string, ctrl *session.Controller) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return view.Document(w, title, ctrl.View())
}
