package trm

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Isolation(t *testing.T) {
	t.Run("driver default", func(t *testing.T) {
		m := NewManager(nil).(*txManager)
		assert.Nil(t, m.opts)
	})

	t.Run("explicit level", func(t *testing.T) {
		m := NewManager(nil, WithIsolation(sql.LevelSerializable)).(*txManager)
		require.NotNil(t, m.opts)
		assert.Equal(t, sql.LevelSerializable, m.opts.Isolation)
		assert.False(t, m.opts.ReadOnly)
	})
}
