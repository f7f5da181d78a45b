package utils

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("WARN"))
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	require.NoError(t, SetLogLevel(""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())

	assert.Error(t, SetLogLevel("loud"))
}

func TestGetAbsDBPath(t *testing.T) {
	p, err := GetAbsDBPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".config", "pwcheck", "history.sqlite"), filepath.Join(filepath.Base(filepath.Dir(filepath.Dir(p))), filepath.Base(filepath.Dir(p)), filepath.Base(p)))

	p, err = GetAbsDBPath("rel.sqlite")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
}

func TestWithLock(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db", "h.sqlite")
	ran := false
	require.NoError(t, WithLock(dbPath, func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}
