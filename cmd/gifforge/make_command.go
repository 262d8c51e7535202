package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gifforge/internal/assemble"
	"gifforge/internal/config"
	"gifforge/internal/frames"
	"gifforge/internal/normalize"
	"gifforge/internal/services"
)

func newMakeCommand(ctx *commandContext) *cobra.Command {
	var delayMS int
	var workers int
	var output string

	cmd := &cobra.Command{
		Use:   "make <image> <image> [image...]",
		Short: "Assemble a GIF from image files in one shot",
		Long: `Normalize the given images, encode them into an animated GIF in
argument order, and write the artifact to the output directory. The frame
collection in the workspace is not touched.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if delayMS == 0 {
				delayMS = cfg.Output.DelayMS
			}
			if delayMS < config.MinDelayMS || delayMS > config.MaxDelayMS {
				return fmt.Errorf("delay must be between %d and %d ms", config.MinDelayMS, config.MaxDelayMS)
			}
			if err := checkOutputDirectory(ctx, output); err != nil {
				return err
			}

			candidates := normalize.FilterImagePaths(args)
			if skipped := len(args) - len(candidates); skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipping %d non-image file(s)\n", skipped)
			}
			if len(candidates) < assemble.MinFrames {
				return fmt.Errorf("need at least %d image files, have %d", assemble.MinFrames, len(candidates))
			}

			normalizer, err := ctx.newNormalizer()
			if err != nil {
				return err
			}
			images, err := normalizer.NormalizeFiles(cmd.Context(), candidates)
			if err != nil {
				return fmt.Errorf("%s", services.UserMessage(err))
			}

			list := make([]frames.Frame, len(images))
			for i, img := range images {
				list[i] = frames.Frame{
					Position:   i,
					SourceName: img.SourceName,
					Width:      img.Width,
					Height:     img.Height,
					PNG:        img.PNG,
				}
			}

			assembler, err := ctx.newAssembler(workers)
			if err != nil {
				return err
			}
			artifact, err := assembler.Assemble(cmd.Context(), list, delayMS)
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
		},
	}

	cmd.Flags().IntVar(&delayMS, "delay", 0, "Per-frame display time in milliseconds")
	cmd.Flags().IntVar(&workers, "workers", 0, "Encoder worker hint")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	return cmd
}
