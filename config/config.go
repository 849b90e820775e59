// Package config loads and validates the declarative benchmark
// configuration that drives command generation. The document describes
// one benchmark deployment: where the meta client and the two server
// roles (Alice and Bob) run, how the workload is sized, and how each
// binary is built and launched.
package config

import (
	"fmt"
)

// Config is the full benchmark configuration. It is constructed once by
// Load at startup and never mutated afterwards.
type Config struct {
	Address    Address    `mapstructure:"address" toml:"address"`
	Parameters Parameters `mapstructure:"parameters" toml:"parameters"`
	Client     Client     `mapstructure:"client" toml:"client"`
	Server     Server     `mapstructure:"server" toml:"server"`
	Network    Network    `mapstructure:"network" toml:"network"`
	Flamegraph Flamegraph `mapstructure:"flamegraph" toml:"flamegraph"`
}

// Address holds the host or IP of each participant.
type Address struct {
	Client string `mapstructure:"client" toml:"client"`
	Alice  string `mapstructure:"alice" toml:"alice"`
	Bob    string `mapstructure:"bob" toml:"bob"`
}

// Parameters holds the workload-sizing knobs shared by all processes.
type Parameters struct {
	GSize      int `mapstructure:"gsize" toml:"gsize"`
	NumClients int `mapstructure:"num_clients" toml:"num_clients"`
	InputSize  int `mapstructure:"input_size" toml:"input_size"`
}

// Client describes how the meta client binary is built and run.
type Client struct {
	Bin        string `mapstructure:"bin" toml:"bin"`
	RunFlags   string `mapstructure:"run_flags" toml:"run_flags"`
	BuildFlags string `mapstructure:"build_flags" toml:"build_flags"`
}

// Server describes how the two server roles are built and run, including
// whether each role is launched under a flamegraph profiler.
type Server struct {
	Bin             string `mapstructure:"bin" toml:"bin"`
	RunFlags        string `mapstructure:"run_flags" toml:"run_flags"`
	BuildFlags      string `mapstructure:"build_flags" toml:"build_flags"`
	NumMPCSockets   int    `mapstructure:"num_mpc_sockets" toml:"num_mpc_sockets"`
	FlamegraphAlice bool   `mapstructure:"flamegraph_alice" toml:"flamegraph_alice"`
	FlamegraphBob   bool   `mapstructure:"flamegraph_bob" toml:"flamegraph_bob"`
}

// Network holds the ports the processes bind and dial. The table is
// optional; omitting it keeps the deployment's conventional ports.
type Network struct {
	AlicePort int `mapstructure:"alice_port" toml:"alice_port"`
	BobPort   int `mapstructure:"bob_port" toml:"bob_port"`
	MetaPort  int `mapstructure:"meta_port" toml:"meta_port"`
}

// Flamegraph holds the parameters of the profiling-artifact retrieval
// command emitted when Bob runs under the profiler. Optional table.
type Flamegraph struct {
	RemoteUser string `mapstructure:"remote_user" toml:"remote_user"`
	KeyFile    string `mapstructure:"key_file" toml:"key_file"`
	RemotePath string `mapstructure:"remote_path" toml:"remote_path"`
	LocalDest  string `mapstructure:"local_dest" toml:"local_dest"`
}

// Conventional defaults for the optional tables.
const (
	DefaultAlicePort = 6666
	DefaultBobPort   = 6667
	DefaultMetaPort  = 7777

	DefaultRemoteUser = "ubuntu"
	DefaultKeyFile    = "~/SecureFL.pem"
	DefaultRemotePath = "~/eiffel-rs/flamegraph.svg"
	DefaultLocalDest  = "."
)

func (c *Config) validate() error {
	if c.Parameters.GSize <= 0 {
		return fmt.Errorf("parameters.gsize must be positive, got %d",
			c.Parameters.GSize)
	}

	if c.Parameters.NumClients <= 0 {
		return fmt.Errorf("parameters.num_clients must be positive, got %d",
			c.Parameters.NumClients)
	}

	if c.Parameters.InputSize <= 0 {
		return fmt.Errorf("parameters.input_size must be positive, got %d",
			c.Parameters.InputSize)
	}

	if c.Server.NumMPCSockets <= 0 {
		return fmt.Errorf("server.num_mpc_sockets must be positive, got %d",
			c.Server.NumMPCSockets)
	}

	if c.Client.Bin == "" {
		return fmt.Errorf("client.bin must not be empty")
	}

	if c.Server.Bin == "" {
		return fmt.Errorf("server.bin must not be empty")
	}

	for name, port := range map[string]int{
		"network.alice_port": c.Network.AlicePort,
		"network.bob_port":   c.Network.BobPort,
		"network.meta_port":  c.Network.MetaPort,
	} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("%s out of range: %d", name, port)
		}
	}

	return nil
}
