package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/captmoose/internal/chat"
)

func newChatCmd(a *app) *cobra.Command {
	var channel string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run the chat bot against stdin",
		Long: `Reads chat messages from stdin, one per line, and answers them the way
the bot answers a channel. Channel replies are written to stdout and
private notices to stderr.

Recognised messages are "moose NAME", ".moose NAME", "mooseme NAME",
".mooseme NAME" and ".bots".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			bot := chat.NewBot(st, chat.BotConfig{
				Pacer:      chat.NewPacer(a.cfg.Chat.PaceInterval, a.cfg.Chat.LinesPerBatch),
				Cooldown:   chat.NewCooldown(a.cfg.Chat.Cooldown),
				LegacyTrim: a.cfg.Chat.UseLegacyTrim(),
				SiteURL:    a.cfg.Chat.SiteURL,
			})

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			say := func(line string) error {
				_, err := fmt.Fprintln(out, line)
				return err
			}
			notice := func(line string) error {
				_, err := fmt.Fprintln(errOut, line)
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if err := ctx.Err(); err != nil {
					return nil
				}
				message := strings.TrimRight(scanner.Text(), "\r")
				if err := bot.Handle(ctx, channel, message, say, notice); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					fmt.Fprintf(errOut, "error: %v\n", err)
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "#moose", "channel name the messages are treated as coming from")
	return cmd
}
