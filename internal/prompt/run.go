package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/quizclient/internal/session"
	"github.com/abhisek/quizclient/internal/ui/termview"
	"github.com/abhisek/quizclient/internal/view"
)

// SkipOption leaves a choice question unanswered.
const SkipOption = "(skip)"

// Width is the column width used for rendered blocks.
const Width = 80

// Run starts a quiz on ctrl, asks every question through d, submits the
// answers and prints the results. A failed submit can be retried.
func Run(ctx context.Context, ctrl *session.Controller, d Driver) error {
	if err := ctrl.Start(ctx); err != nil {
		if ierr := d.Info(ctx, ctrl.Message()); ierr != nil {
			return ierr
		}
		return err
	}

	if err := d.Info(ctx, termview.Render(ctrl.BannerView(), Width, nil)); err != nil {
		return err
	}

	for i, q := range ctrl.Questions() {
		msg := fmt.Sprintf("%d. %s", i+1, q.Prompt)
		if s := ctrl.RowView(i).Find(view.ByClass("stats")); s != nil {
			if err := d.Info(ctx, s.TextContent()); err != nil {
				return err
			}
		}

		if q.IsRadio() {
			choices := view.Choices(q)
			options := make([]string, 0, len(choices)+1)
			for _, c := range choices {
				options = append(options, c.Label)
			}
			options = append(options, SkipOption)

			idx, err := d.Select(ctx, SelectConfig{Message: msg, Options: options})
			if err != nil {
				return err
			}
			if idx >= 0 && idx < len(choices) {
				if err := ctrl.Select(string(q.ID), idx); err != nil {
					return err
				}
			}
			continue
		}

		text, err := d.TextArea(ctx, TextAreaConfig{Message: msg})
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) != "" {
			if err := ctrl.Type(string(q.ID), text); err != nil {
				return err
			}
		}
	}

	return submit(ctx, ctrl, d)
}

func submit(ctx context.Context, ctrl *session.Controller, d Driver) error {
	message := "Submit answers?"
	var lastErr error
	for {
		ok, err := d.Confirm(ctx, ConfirmConfig{Message: message, Default: true})
		if err != nil {
			return err
		}
		if !ok {
			return lastErr
		}

		lastErr = ctrl.Submit(ctx)
		if ae, isAlert := session.IsAlert(lastErr); isAlert {
			return d.Info(ctx, ae.Msg)
		}
		if err := d.Info(ctx, termview.Render(ctrl.ResultsView(), Width, nil)); err != nil {
			return err
		}
		if ctrl.State() == session.StateSubmitted {
			return nil
		}
		message = "Submit again?"
	}
}
