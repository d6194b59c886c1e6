package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDefaults(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	Defaults()
	viper.Set("security.jwt_secret", "test-secret")
}

func TestValidateDefaults(t *testing.T) {
	setupDefaults(t)

	require.NoError(t, Validate())
	assert.Equal(t, "sqlite", viper.GetString("db.driver"))
	assert.Equal(t, 50, viper.GetInt("pagination.max_limit"))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"log level", "app.log_level", "verbose"},
		{"port", "host.port", 0},
		{"driver", "db.driver", "mongo"},
		{"max limit", "pagination.max_limit", -1},
		{"schedule", "search.reindex_schedule", "every now and then"},
		{"jwt secret", "security.jwt_secret", ""},
		{"media type", "media.type", "ftp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupDefaults(t)
			viper.Set(tt.key, tt.val)

			assert.Error(t, Validate())
		})
	}
}

func TestValidateS3NeedsCredentials(t *testing.T) {
	setupDefaults(t)
	viper.Set("media.type", "s3")

	assert.Error(t, Validate())

	viper.Set("aws.access_key", "key")
	viper.Set("aws.secret_access_key", "secret")
	viper.Set("aws.bucket", "videos")

	assert.NoError(t, Validate())
}
