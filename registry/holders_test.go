package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHolderIndex(t *testing.T) {
	index := NewHolderIndex()

	t.Run("Records in insertion order", func(t *testing.T) {
		index.Record("0xA")
		index.Record("0xB")
		index.Record("0xC")
		assert.Equal(t, []string{"0xA", "0xB", "0xC"}, index.Holders())
		assert.Equal(t, 3, index.Len())
	})

	t.Run("Re-recording never re-appends", func(t *testing.T) {
		index.Record("0xB")
		index.Record("0xA")
		assert.Equal(t, []string{"0xA", "0xB", "0xC"}, index.Holders())
	})

	t.Run("Membership queries", func(t *testing.T) {
		assert.True(t, index.Seen("0xA"))
		assert.False(t, index.Seen("0xD"))

		_, known := index.FirstSeen("0xC")
		assert.True(t, known)
	})

	t.Run("Empty account ignored", func(t *testing.T) {
		index.Record("")
		assert.Equal(t, 3, index.Len())
	})

	t.Run("Holders returns a copy", func(t *testing.T) {
		holders := index.Holders()
		holders[0] = "mutated"
		assert.Equal(t, "0xA", index.Holders()[0])
	})
}
