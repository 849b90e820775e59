package config

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Default returns a complete example configuration for a single-host
// deployment of the baseline protocol.
func Default() Config {
	return Config{
		Address: Address{
			Client: "127.0.0.1",
			Alice:  "127.0.0.1",
			Bob:    "127.0.0.1",
		},
		Parameters: Parameters{
			GSize:      10,
			NumClients: 100,
			InputSize:  1024,
		},
		Client: Client{
			Bin:        "client-baseline",
			RunFlags:   "",
			BuildFlags: "",
		},
		Server: Server{
			Bin:             "server-baseline",
			RunFlags:        "",
			BuildFlags:      "",
			NumMPCSockets:   16,
			FlamegraphAlice: false,
			FlamegraphBob:   false,
		},
		Network: Network{
			AlicePort: DefaultAlicePort,
			BobPort:   DefaultBobPort,
			MetaPort:  DefaultMetaPort,
		},
		Flamegraph: Flamegraph{
			RemoteUser: DefaultRemoteUser,
			KeyFile:    DefaultKeyFile,
			RemotePath: DefaultRemotePath,
			LocalDest:  DefaultLocalDest,
		},
	}
}

// WriteSample writes the Default configuration as a TOML document,
// suitable as a starting point for a real deployment.
func WriteSample(w io.Writer) error {
	enc := toml.NewEncoder(w)

	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("encode sample config: %w", err)
	}

	return nil
}
