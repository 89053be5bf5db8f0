package chat

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// CommandKind identifies a chat command.
type CommandKind int

const (
	// CommandMoose asks for a moose by name: "moose NAME", ".moose NAME",
	// "mooseme NAME" or ".mooseme NAME".
	CommandMoose CommandKind = iota + 1
	// CommandBots is the ".bots" roll call.
	CommandBots
)

// Command is a parsed chat message.
type Command struct {
	Kind CommandKind
	Name string
}

var (
	moosePattern = regexp.MustCompile(`^\.?moose(?:me)? ([A-Za-z0-9 _-]+)`)
	botsPattern  = regexp.MustCompile(`^\.bots`)
)

// ParseCommand recognises the bot's commands at the start of a message.
func ParseCommand(message string) (Command, bool) {
	if m := moosePattern.FindStringSubmatch(message); m != nil {
		name := strings.TrimSpace(m[1])
		if name == "" {
			return Command{}, false
		}
		return Command{Kind: CommandMoose, Name: name}, true
	}
	if botsPattern.MatchString(message) {
		return Command{Kind: CommandBots}, true
	}
	return Command{}, false
}

// Handle answers one channel message. Replies go to the channel through
// say; a cooldown notice goes privately to the sender through notice.
// Messages outside a channel or without a command are ignored.
func (b *Bot) Handle(ctx context.Context, target, message string, say, notice SayFunc) error {
	if !strings.HasPrefix(target, "#") {
		return nil
	}
	cmd, ok := ParseCommand(message)
	if !ok {
		return nil
	}

	var err error
	switch cmd.Kind {
	case CommandBots:
		if wait, ok := b.cfg.Cooldown.Allow(); !ok {
			err = &CooldownError{Remaining: wait}
			break
		}
		err = b.Introduce(say)
	case CommandMoose:
		err = b.Show(ctx, target, cmd.Name, say)
	}

	var cd *CooldownError
	if errors.As(err, &cd) {
		return notice(cd.Error())
	}
	return err
}
