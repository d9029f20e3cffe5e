// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package config

// validate checks the final merged [StructuredConfig] and fills engine
// defaults for unset sync tunables. Only settings both binaries depend on
// are validated here; per-binary requirements (DSN for the server, adapter
// settings for the client) are checked by the respective entrypoints via
// [StructuredConfig.ValidateServer] and [StructuredConfig.ValidateClient].
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.StreamPageSize <= 0 {
		cfg.Sync.StreamPageSize = DefaultStreamPageSize
	}
	if cfg.Sync.IncrementalPageLimit <= 0 {
		cfg.Sync.IncrementalPageLimit = DefaultIncrementalPageLimit
	}
	if cfg.Sync.PurgeRetention <= 0 {
		cfg.Sync.PurgeRetention = DefaultPurgeRetention
	}
	if cfg.Workers.PurgeInterval <= 0 {
		cfg.Workers.PurgeInterval = DefaultPurgeInterval
	}

	return nil
}

// ValidateServer checks the settings the sync server cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenIssuer == "" {
		return ErrInvalidAuthConfigs
	}

	return nil
}

// ValidateClient checks the settings the replica client cannot start without.
func (cfg *StructuredConfig) ValidateClient() error {
	if cfg.Storage.Replica.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.Token == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
