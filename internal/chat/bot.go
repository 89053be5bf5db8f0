package chat

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ironsheep/captmoose/internal/logging"
	"github.com/ironsheep/captmoose/internal/moose"
	"github.com/ironsheep/captmoose/internal/store"
)

// mIRC red, used for error replies.
const ircRed = 4

// RandomName asks for a random moose instead of a named one.
const RandomName = "random"

// Source looks moose up for the bot.
type Source interface {
	Get(ctx context.Context, name string) (*store.Moose, error)
	Random(ctx context.Context) (*store.Moose, error)
}

// BotConfig configures a Bot.
type BotConfig struct {
	Pacer      *Pacer
	Cooldown   *Cooldown
	LegacyTrim bool
	SiteURL    string
}

// Bot answers moose requests in a chat channel.
type Bot struct {
	source Source
	cfg    BotConfig
}

// NewBot returns a Bot reading from source.
func NewBot(source Source, cfg BotConfig) *Bot {
	return &Bot{source: source, cfg: cfg}
}

// Show looks up name, crops it and sends it to target through the pacer.
//
// A request inside the cooldown returns a *CooldownError without sending
// anything to target. A missing moose is answered in the channel with a
// link to the editor and is not an error. Only a moose that is actually
// shown keeps the cooldown running.
func (b *Bot) Show(ctx context.Context, target, name string, say SayFunc) error {
	name = strings.TrimSpace(name)
	if wait, ok := b.cfg.Cooldown.TryMark(); !ok {
		return &CooldownError{Remaining: wait}
	}

	m, err := b.lookup(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		b.cfg.Cooldown.Unmark()
		return say(Bold(Colorize(ircRed, "moose not found.")) + " create him at " + b.editURL(name))
	}
	if err != nil {
		b.cfg.Cooldown.Unmark()
		logging.Error("Chat", err, "Failed to load moose %q", name)
		if sayErr := say(Bold(Colorize(ircRed, "moose parsing error"))); sayErr != nil {
			return sayErr
		}
		return err
	}

	lines, err := b.Lines(m.Grid)
	if err != nil {
		b.cfg.Cooldown.Unmark()
		return fmt.Errorf("cannot show moose %q: %w", m.Name, err)
	}
	if name == RandomName {
		lines = append(lines, "a lovely "+m.Name+" moose")
	}

	sent, err := b.cfg.Pacer.Say(ctx, target, lines, say)
	if err != nil {
		logging.Warn("Chat", "Moose %q interrupted after %d of %d lines: %v", m.Name, sent, len(lines), err)
		return err
	}
	return nil
}

// Introduce answers the channel's bot roll call.
func (b *Bot) Introduce(say SayFunc) error {
	return say("CaptMoose [Go], create moose pictures at " + b.cfg.SiteURL)
}

// Lines crops g and renders it as IRC lines.
func (b *Bot) Lines(g *moose.Grid) ([]string, error) {
	var rows [][]moose.Color
	if b.cfg.LegacyTrim {
		trimmed, err := moose.TrimRagged(g)
		if err != nil {
			return nil, err
		}
		rows = trimmed
	} else {
		trimmed, err := moose.Trim(g)
		if err != nil {
			return nil, err
		}
		rows = trimmed.Rows()
	}
	return Strings(RenderIRC(g.Palette(), rows)), nil
}

func (b *Bot) lookup(ctx context.Context, name string) (*store.Moose, error) {
	if name == RandomName {
		return b.source.Random(ctx)
	}
	return b.source.Get(ctx, name)
}

func (b *Bot) editURL(name string) string {
	return strings.TrimRight(b.cfg.SiteURL, "/") + "/edit/" + url.PathEscape(name)
}
