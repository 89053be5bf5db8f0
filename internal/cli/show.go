package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/captmoose/internal/chat"
	"github.com/ironsheep/captmoose/internal/moose"
	"github.com/ironsheep/captmoose/internal/store"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		ansi   bool
		noPace bool
	)

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a stored moose the way the chat bot would",
		Long: `Prints a stored moose, cropped to its painted cells.

By default the output is the raw IRC text the bot sends, paced like the bot
(chat.linesPerBatch lines every chat.paceInterval). With --ansi the moose is
drawn with terminal background colours instead. Use "random" as the name
for a random moose.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			st, err := a.openStore()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var found *store.Moose
			if name == chat.RandomName {
				found, err = st.Random(ctx)
			} else {
				found, err = st.Get(ctx, name)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ansi {
				return printANSI(out, found.Grid)
			}

			interval := a.cfg.Chat.PaceInterval
			if noPace {
				interval = 0
			}
			pacer := chat.NewPacer(interval, a.cfg.Chat.LinesPerBatch)
			bot := chat.NewBot(st, chat.BotConfig{Pacer: pacer, LegacyTrim: a.cfg.Chat.UseLegacyTrim()})
			lines, err := bot.Lines(found.Grid)
			if err != nil {
				return err
			}
			_, err = pacer.Say(ctx, "stdout", lines, func(line string) error {
				_, err := fmt.Fprintln(out, line)
				return err
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&ansi, "ansi", false, "draw with terminal colours instead of IRC codes")
	cmd.Flags().BoolVar(&noPace, "no-pace", false, "print all lines at once")
	return cmd
}

func printANSI(w io.Writer, g *moose.Grid) error {
	trimmed, err := moose.Trim(g)
	if err != nil {
		return err
	}
	for _, line := range chat.RenderTerminal(g.Palette(), trimmed.Rows()) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
