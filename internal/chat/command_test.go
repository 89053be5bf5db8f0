package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/captmoose/internal/store"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		message string
		want    Command
		ok      bool
	}{
		{"moose bob", Command{Kind: CommandMoose, Name: "bob"}, true},
		{".moose big moose ", Command{Kind: CommandMoose, Name: "big moose"}, true},
		{"mooseme random", Command{Kind: CommandMoose, Name: "random"}, true},
		{".mooseme bob!!", Command{Kind: CommandMoose, Name: "bob"}, true},
		{".bots", Command{Kind: CommandBots}, true},
		{".bots please", Command{Kind: CommandBots}, true},
		{"moose", Command{}, false},
		{"hello moose bob", Command{}, false},
		{"bots", Command{}, false},
		{"moose    ", Command{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseCommand(tt.message)
		assert.Equal(t, tt.ok, ok, "%q", tt.message)
		assert.Equal(t, tt.want, got, "%q", tt.message)
	}
}

func TestBot_Handle(t *testing.T) {
	src := &fakeSource{moose: map[string]*store.Moose{"bob": testMoose(t, "bob")}}
	b := testBot(src)
	channel, private := &recorder{}, &recorder{}
	ctx := context.Background()

	// ignored: private message and chatter
	require.NoError(t, b.Handle(ctx, "someone", "moose bob", channel.say, private.say))
	require.NoError(t, b.Handle(ctx, "#moose", "nice weather", channel.say, private.say))
	assert.Empty(t, channel.sent())

	require.NoError(t, b.Handle(ctx, "#moose", ".bots", channel.say, private.say))
	require.Len(t, channel.sent(), 1)

	require.NoError(t, b.Handle(ctx, "#moose", "moose bob", channel.say, private.say))
	assert.Len(t, channel.sent(), 3)

	// inside the cooldown both commands get a private notice
	require.NoError(t, b.Handle(ctx, "#moose", "moose bob", channel.say, private.say))
	require.NoError(t, b.Handle(ctx, "#moose", ".bots", channel.say, private.say))
	assert.Len(t, channel.sent(), 3)
	assert.Equal(t, []string{
		"please wait another 25 seconds",
		"please wait another 25 seconds",
	}, private.sent())
}
