package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/pkg/config"
)

func TestNew(t *testing.T) {
	cfg, err := config.New("../../../configs/config_test.yaml")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "inkwell_test", cfg.PostgresDB.DB)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 1, cfg.RedisSessions.DB)
	assert.Equal(t, 5, cfg.Blog.PostsPerPage)
}

func TestNewMissingFile(t *testing.T) {
	_, err := config.New("no-such-config.yaml")
	require.Error(t, err)
}

func TestNewDefaultsPageSizes(t *testing.T) {
	cfg, err := config.New("testdata/minimal.yaml")
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Blog.PostsPerPage)
	assert.Equal(t, 30, cfg.Blog.CommentsPerPage)
	assert.Equal(t, 50, cfg.Blog.FollowersPerPage)
}
