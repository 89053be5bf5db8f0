package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/captmoose/internal/imaging"
)

func newImportPNGCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-png NAME FILE",
		Short: "Create a moose from an image",
		Long: `Loads an image, scales it to the moose size and maps every pixel to the
nearest palette colour. Pixels that are mostly transparent become
transparent cells. The result is saved under NAME.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := strings.TrimSpace(args[0]), args[1]
			st, err := a.openStore()
			if err != nil {
				return err
			}
			if err := st.ValidateName(name); err != nil {
				return err
			}

			img, err := imaging.LoadImage(path)
			if err != nil {
				return err
			}
			g, err := imaging.Quantize(a.def, img)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			m, err := st.Create(ctx, name, g)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved moose %q\n", m.Name)
			return nil
		},
	}
}

func newImportLegacyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-legacy FILE",
		Short: "Import moose from a legacy JSON lines dump",
		Long: `Imports a dump with one JSON moose record per line, as written by the
old moose database. Records whose name already exists are skipped, broken
records are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open dump: %w", err)
			}
			defer f.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			res, err := st.ImportLegacy(ctx, f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d, skipped %d, failed %d\n", res.Imported, res.Skipped, len(res.Failed))
			for _, msg := range res.Failed {
				fmt.Fprintf(out, "  %s\n", msg)
			}
			return nil
		},
	}
}
