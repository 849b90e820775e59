package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ConfigError reports any failure to produce a usable Config: a missing
// or unreadable file, a parse error, absent required keys, or values
// outside their valid range.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// requiredKeys are the keys every configuration document must carry.
// The network and flamegraph tables are optional and defaulted.
var requiredKeys = []string{
	"address.client",
	"address.alice",
	"address.bob",
	"parameters.gsize",
	"parameters.num_clients",
	"parameters.input_size",
	"client.bin",
	"client.run_flags",
	"client.build_flags",
	"server.bin",
	"server.run_flags",
	"server.build_flags",
	"server.num_mpc_sockets",
	"server.flamegraph_alice",
	"server.flamegraph_bob",
}

// Load reads the configuration document at path, verifies that every
// required key is present, and decodes it into a validated Config.
// The format is inferred from the file extension; TOML is the
// conventional choice. All failures are reported as a *ConfigError.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var missing []string

	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return nil, &ConfigError{
			Path: path,
			Err: fmt.Errorf("missing required keys: %s",
				strings.Join(missing, ", ")),
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Path: path,
			Err:  fmt.Errorf("decode: %w", err),
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("network.alice_port", DefaultAlicePort)
	v.SetDefault("network.bob_port", DefaultBobPort)
	v.SetDefault("network.meta_port", DefaultMetaPort)

	v.SetDefault("flamegraph.remote_user", DefaultRemoteUser)
	v.SetDefault("flamegraph.key_file", DefaultKeyFile)
	v.SetDefault("flamegraph.remote_path", DefaultRemotePath)
	v.SetDefault("flamegraph.local_dest", DefaultLocalDest)
}
