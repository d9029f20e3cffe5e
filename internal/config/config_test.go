package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost:5432/regifarm")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("AUTH_TOKEN_ISSUER", "regifarm-sync")
	t.Setenv("SYNC_STREAM_PAGE_SIZE", "250")
	t.Setenv("WORKERS_SYNC_INTERVAL", "5m")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "postgres://u:p@localhost:5432/regifarm", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "regifarm-sync", cfg.Auth.TokenIssuer)
	assert.Equal(t, 250, cfg.Sync.StreamPageSize)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_FullFile(t *testing.T) {
	raw := map[string]any{
		"auth": map[string]any{
			"token_sign_key": "k",
			"token_issuer":   "regifarm-sync",
			"token_duration": "1h",
		},
		"storage": map[string]any{
			"db":      map[string]any{"dsn": "postgres://localhost/regifarm"},
			"replica": map[string]any{"path": "replica.db"},
		},
		"server": map[string]any{
			"http_address":    "localhost:9090",
			"request_timeout": "30s",
		},
		"sync": map[string]any{
			"stream_page_size":       100,
			"incremental_page_limit": 200,
			"purge_retention":        "720h",
		},
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.Auth.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "postgres://localhost/regifarm", cfg.Storage.DB.DSN)
	assert.Equal(t, "replica.db", cfg.Storage.Replica.Path)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 100, cfg.Sync.StreamPageSize)
	assert.Equal(t, 200, cfg.Sync.IncrementalPageLimit)
	assert.Equal(t, 720*time.Hour, cfg.Sync.PurgeRetention)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/does/not/exist.json")
	assert.Error(t, err)
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, cfg.validate())

	assert.Equal(t, DefaultStreamPageSize, cfg.Sync.StreamPageSize)
	assert.Equal(t, DefaultIncrementalPageLimit, cfg.Sync.IncrementalPageLimit)
	assert.Equal(t, DefaultPurgeRetention, cfg.Sync.PurgeRetention)
	assert.Equal(t, DefaultPurgeInterval, cfg.Workers.PurgeInterval)
}

func TestValidateServer(t *testing.T) {
	valid := StructuredConfig{
		Auth:    Auth{TokenSignKey: "k", TokenIssuer: "i"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/regifarm"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}

	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "missing dsn",
			mutate:  func(c *StructuredConfig) { c.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing address",
			mutate:  func(c *StructuredConfig) { c.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "missing sign key",
			mutate:  func(c *StructuredConfig) { c.Auth.TokenSignKey = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.ValidateServer()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateClient(t *testing.T) {
	valid := StructuredConfig{
		Storage: Storage{Replica: Replica{Path: "replica.db"}},
		Adapter: Adapter{BaseURL: "http://localhost:8080", Token: "t"},
		Workers: Workers{SyncInterval: time.Minute},
	}

	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "missing replica path",
			mutate:  func(c *StructuredConfig) { c.Storage.Replica.Path = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing base url",
			mutate:  func(c *StructuredConfig) { c.Adapter.BaseURL = "" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			// zero means one-shot mode, only negative intervals are invalid
			name:   "zero sync interval",
			mutate: func(c *StructuredConfig) { c.Workers.SyncInterval = 0 },
		},
		{
			name:    "negative sync interval",
			mutate:  func(c *StructuredConfig) { c.Workers.SyncInterval = -time.Minute },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.ValidateClient()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8080", want: "localhost:8080"},
		{name: "ip", input: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "no port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:abc", wantErr: true},
		{name: "negative port", input: "localhost:-1", wantErr: true},
		{name: "bad host", input: "not_an_ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
		})
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))

	assert.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}
