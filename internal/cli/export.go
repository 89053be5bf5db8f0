package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/captmoose/internal/imaging"
	"github.com/ironsheep/captmoose/internal/logging"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		out   string
		scale int
		grid  bool
		trim  bool
	)

	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Paint a stored moose into an image file",
		Long: `Paints a stored moose with the configured cell size and writes it to the
file given with --out. The format follows the file extension (png, jpg, gif,
tif or bmp).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			name := strings.Join(args, " ")
			st, err := a.openStore()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			m, err := st.Get(ctx, name)
			if err != nil {
				return err
			}

			opts := a.canvas()
			opts.Scale = scale
			opts.Grid = grid
			opts.Trim = trim
			img, err := imaging.Render(m.Grid, opts)
			if err != nil {
				return err
			}
			if err := imaging.SaveImage(img, out); err != nil {
				return err
			}

			b := img.Bounds()
			logging.Info("CLI", "Exported moose %q to %s", m.Name, out)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", out, b.Dx(), b.Dy())
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output image file")
	cmd.Flags().IntVar(&scale, "scale", 1, "integer upscale factor")
	cmd.Flags().BoolVar(&grid, "grid", false, "draw cell grid lines")
	cmd.Flags().BoolVar(&trim, "trim", false, "crop to the painted cells")
	return cmd
}
