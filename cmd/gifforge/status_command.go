package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gifforge/internal/frames"
	"gifforge/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show workspace health and collection summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			results := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, passFail(r.Passed), r.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))

			err = ctx.withStore(func(store *frames.Store) error {
				size, err := store.Size(cmd.Context())
				if err != nil {
					return err
				}
				sess, err := store.Session(cmd.Context())
				if err != nil {
					return err
				}
				title := sess.Title
				if title == "" {
					title = "(untitled)"
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Frames", "Title", "Delay (ms)"},
					[][]string{{strconv.Itoa(size), title, strconv.Itoa(sess.DelayMS)}},
					0, 2))
				return nil
			})
			if errors.Is(err, frames.ErrWorkspaceLocked) {
				fmt.Fprintln(out, "Workspace is in use by another gifforge session")
				return nil
			}
			if err != nil {
				return err
			}

			if !preflight.AllPassed(results) {
				return fmt.Errorf("one or more preflight checks failed")
			}
			return nil
		},
	}
}

func passFail(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
