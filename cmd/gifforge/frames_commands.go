package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gifforge/internal/frames"
	"gifforge/internal/normalize"
	"gifforge/internal/services"
)

func newFramesCommand(ctx *commandContext) *cobra.Command {
	framesCmd := &cobra.Command{
		Use:   "frames",
		Short: "Manage the workspace frame collection",
	}

	framesCmd.AddCommand(newFramesAddCommand(ctx))
	framesCmd.AddCommand(newFramesListCommand(ctx))
	framesCmd.AddCommand(newFramesRemoveCommand(ctx))
	framesCmd.AddCommand(newFramesClearCommand(ctx))
	framesCmd.AddCommand(newFramesDelayCommand(ctx))

	return framesCmd
}

func newFramesAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <image> [image...]",
		Short: "Normalize images and append them to the collection",
		Long: `Each image is decoded, bounded to the configured maximum dimension,
and re-encoded as PNG. The batch is appended in argument order; if any file
fails, the whole batch is rejected and the collection is unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images := normalize.FilterImagePaths(args)
			if len(images) == 0 {
				return fmt.Errorf("no supported image files among %d argument(s)", len(args))
			}
			if skipped := len(args) - len(images); skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipping %d non-image file(s)\n", skipped)
			}

			normalizer, err := ctx.newNormalizer()
			if err != nil {
				return err
			}
			batch, err := normalizer.NormalizeFiles(cmd.Context(), images)
			if err != nil {
				return fmt.Errorf("%s", services.UserMessage(err))
			}

			return ctx.withStore(func(store *frames.Store) error {
				appended, err := store.Append(cmd.Context(), batch)
				if err != nil {
					return err
				}
				size, err := store.Size(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d frame(s); collection now holds %d\n", len(appended), size)
				return nil
			})
		},
	}
}

func newFramesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the collection in animation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *frames.Store) error {
				list, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				sess, err := store.Session(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "Collection is empty")
					return nil
				}

				rows := make([][]string, 0, len(list))
				for _, f := range list {
					rows = append(rows, []string{
						strconv.Itoa(f.Position + 1),
						f.ID,
						f.SourceName,
						fmt.Sprintf("%dx%d", f.Width, f.Height),
						strconv.Itoa(len(f.PNG)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "ID", "Source", "Size", "Bytes"}, rows, 0, 4))
				title := sess.Title
				if title == "" {
					title = "(untitled)"
				}
				fmt.Fprintf(out, "Title: %s  Delay: %d ms/frame\n", title, sess.DelayMS)
				return nil
			})
		},
	}
}

func newFramesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one frame by id",
		Long: `Removing a frame renumbers the remaining frames so positions stay
dense. Removing an id that no longer exists is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *frames.Store) error {
				if err := store.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				size, err := store.Size(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Collection now holds %d frame(s)\n", size)
				return nil
			})
		},
	}
}

func newFramesClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard all frames and reset the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *frames.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Collection cleared")
				return nil
			})
		},
	}
}

func newFramesDelayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delay <milliseconds>",
		Short: "Set the per-frame display time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delayMS, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse delay %q: %w", args[0], err)
			}
			return ctx.withStore(func(store *frames.Store) error {
				if err := store.SetDelay(cmd.Context(), delayMS); err != nil {
					return fmt.Errorf("%s", services.UserMessage(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Delay set to %d ms/frame\n", delayMS)
				return nil
			})
		},
	}
}
