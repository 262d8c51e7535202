package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gifforge/internal/frames"
	"gifforge/internal/preflight"
	"gifforge/internal/services"
)

// newExportCommand assembles the workspace frame collection into a GIF and
// writes it without entering the studio.
func newExportCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Assemble and export the workspace frame collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputDirectory(ctx, output); err != nil {
				return err
			}
			return ctx.withStore(func(store *frames.Store) error {
				list, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				sess, err := store.Session(cmd.Context())
				if err != nil {
					return err
				}

				assembler, err := ctx.newAssembler(0)
				if err != nil {
					return err
				}
				artifact, err := assembler.Assemble(cmd.Context(), list, sess.DelayMS)
				if err != nil {
					return fmt.Errorf("%s", services.UserMessage(err))
				}

				exporter, err := ctx.newExporter()
				if err != nil {
					return err
				}
				var path string
				if output != "" {
					path, err = exporter.ExportTo(output, artifact)
				} else {
					path, err = exporter.Export(artifact)
				}
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames, %dx%d, %d ms/frame)\n",
					path, artifact.FrameCount, artifact.Width, artifact.Height, artifact.DelayMS)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	return cmd
}

// checkOutputDirectory runs the output-directory preflight check before an
// export so a bad directory fails with a clear message instead of mid-write.
// An explicit output path bypasses the configured directory.
func checkOutputDirectory(ctx *commandContext, output string) error {
	if output != "" {
		return nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	res := preflight.CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir)
	if !res.Passed {
		return fmt.Errorf("output directory not usable: %s", res.Detail)
	}
	return nil
}
