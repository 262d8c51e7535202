package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gifforge/internal/frames"
	"gifforge/internal/studio"
)

func newStudioCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "studio",
		Short: "Open the interactive GIF studio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractiveTerminal() {
				return fmt.Errorf("studio requires an interactive terminal; use 'gifforge make' or 'gifforge frames' instead")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			normalizer, err := ctx.newNormalizer()
			if err != nil {
				return err
			}
			assembler, err := ctx.newAssembler(0)
			if err != nil {
				return err
			}
			exporter, err := ctx.newExporter()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *frames.Store) error {
				model := studio.New(cfg, store, normalizer, assembler, exporter, logger)
				program := tea.NewProgram(model, tea.WithAltScreen())
				_, err := program.Run()
				return err
			})
		},
	}
}

func isInteractiveTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
