package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayers(t *testing.T) {
	t.Run("next skips eliminated players and wraps around", func(t *testing.T) {
		p := NewPlayers(3)
		require.Equal(t, PlayerID(1), p.Next())
		p.Kill(2)
		require.Equal(t, PlayerID(3), p.Next(), "Should skip the eliminated player")
		require.Equal(t, PlayerID(1), p.Next(), "Should wrap around")
		require.Equal(t, 2, p.Left())
		require.Equal(t, []PlayerID{1, 3}, p.LeftPlayers())
	})

	t.Run("rotation puts a player first and keeps the cycle", func(t *testing.T) {
		p := NewPlayers(4)
		p.Rotate(3)
		require.Equal(t, []PlayerID{3, 4, 1, 2}, p.IDs())
		require.Equal(t, PlayerID(3), p.Next())
	})

	t.Run("victims exclude the actor, eliminated and protected players", func(t *testing.T) {
		p := NewPlayers(4)
		p.Kill(2)
		p.Get(3).Defence = true
		require.Equal(t, []PlayerID{4}, p.Victims(1))
	})

	t.Run("clones do not share flags", func(t *testing.T) {
		p := NewPlayers(2)
		clone := p.Clone()
		clone.Kill(1)
		require.False(t, p.Get(1).Lost, "Original should not see the clone's elimination")
		require.True(t, clone.Get(1).Lost)
	})

	t.Run("reset clears round flags", func(t *testing.T) {
		p := NewPlayers(2)
		p.Kill(1)
		p.Get(2).Defence = true
		p.Get(2).WonRound = true
		p.Next()
		p.Reset()
		require.Equal(t, 2, p.Left())
		require.False(t, p.Get(2).Defence)
		require.False(t, p.Get(2).WonRound)
		require.Equal(t, PlayerID(1), p.Next())
	})

	t.Run("unknown players panic", func(t *testing.T) {
		p := NewPlayers(2)
		require.Panics(t, func() { p.Get(4) })
	})
}
