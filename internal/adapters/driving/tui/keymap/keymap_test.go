package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		keys    []string
		present []string
	}{
		{"quit", km.Quit.Keys(), []string{"esc", "ctrl+c"}},
		{"send", km.Send.Keys(), []string{"enter"}},
		{"mode", km.Mode.Keys(), []string{"tab"}},
		{"scroll up", km.ScrollUp.Keys(), []string{"pgup"}},
		{"scroll down", km.ScrollDown.Keys(), []string{"pgdown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.present {
				assert.Contains(t, tt.keys, k)
			}
		})
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 3)
	assert.Equal(t, "send", help[0].Help().Desc)
	assert.Equal(t, "quit", help[2].Help().Desc)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.FullHelp()

	assert.Len(t, help, 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("esc", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("q", km.Quit))
	assert.True(t, Matches("enter", km.Send))
	assert.False(t, Matches("", km.Send))
}
