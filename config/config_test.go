package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const validTOML = `
[address]
client = "10.0.0.3"
alice = "10.0.0.1"
bob = "10.0.0.2"

[parameters]
gsize = 5
num_clients = 3
input_size = 100

[client]
bin = "client-baseline"
run_flags = "--check"
build_flags = "--features po2"

[server]
bin = "server-baseline"
run_flags = "--lan"
build_flags = "--features malicious"
num_mpc_sockets = 4
flamegraph_alice = false
flamegraph_bob = false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "benchmark_config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validTOML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Address.Alice != "10.0.0.1" {
		t.Errorf("address.alice = %q, want 10.0.0.1", cfg.Address.Alice)
	}
	if cfg.Address.Bob != "10.0.0.2" {
		t.Errorf("address.bob = %q, want 10.0.0.2", cfg.Address.Bob)
	}
	if cfg.Parameters.GSize != 5 {
		t.Errorf("parameters.gsize = %d, want 5", cfg.Parameters.GSize)
	}
	if cfg.Parameters.NumClients != 3 {
		t.Errorf("parameters.num_clients = %d, want 3", cfg.Parameters.NumClients)
	}
	if cfg.Parameters.InputSize != 100 {
		t.Errorf("parameters.input_size = %d, want 100", cfg.Parameters.InputSize)
	}
	if cfg.Client.Bin != "client-baseline" {
		t.Errorf("client.bin = %q, want client-baseline", cfg.Client.Bin)
	}
	if cfg.Server.NumMPCSockets != 4 {
		t.Errorf("server.num_mpc_sockets = %d, want 4", cfg.Server.NumMPCSockets)
	}
	if cfg.Server.FlamegraphAlice || cfg.Server.FlamegraphBob {
		t.Error("flamegraph flags should be false")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validTOML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Network.AlicePort != DefaultAlicePort {
		t.Errorf("alice_port = %d, want %d",
			cfg.Network.AlicePort, DefaultAlicePort)
	}
	if cfg.Network.BobPort != DefaultBobPort {
		t.Errorf("bob_port = %d, want %d",
			cfg.Network.BobPort, DefaultBobPort)
	}
	if cfg.Network.MetaPort != DefaultMetaPort {
		t.Errorf("meta_port = %d, want %d",
			cfg.Network.MetaPort, DefaultMetaPort)
	}
	if cfg.Flamegraph.KeyFile != DefaultKeyFile {
		t.Errorf("key_file = %q, want %q",
			cfg.Flamegraph.KeyFile, DefaultKeyFile)
	}
	if cfg.Flamegraph.RemoteUser != DefaultRemoteUser {
		t.Errorf("remote_user = %q, want %q",
			cfg.Flamegraph.RemoteUser, DefaultRemoteUser)
	}
}

func TestLoadOverridesOptionalTables(t *testing.T) {
	doc := validTOML + `
[network]
alice_port = 16666
bob_port = 16667
meta_port = 17777

[flamegraph]
remote_user = "admin"
key_file = "/keys/bench.pem"
remote_path = "/tmp/flamegraph.svg"
local_dest = "/tmp"
`

	cfg, err := Load(writeConfig(t, doc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Network.AlicePort != 16666 {
		t.Errorf("alice_port = %d, want 16666", cfg.Network.AlicePort)
	}
	if cfg.Network.MetaPort != 17777 {
		t.Errorf("meta_port = %d, want 17777", cfg.Network.MetaPort)
	}
	if cfg.Flamegraph.RemoteUser != "admin" {
		t.Errorf("remote_user = %q, want admin", cfg.Flamegraph.RemoteUser)
	}
	if cfg.Flamegraph.KeyFile != "/keys/bench.pem" {
		t.Errorf("key_file = %q, want /keys/bench.pem", cfg.Flamegraph.KeyFile)
	}
}

func TestLoadMissingKey(t *testing.T) {
	doc := strings.Replace(validTOML, "num_mpc_sockets = 4\n", "", 1)

	_, err := Load(writeConfig(t, doc))
	if err == nil {
		t.Fatal("expected error for missing key")
	}

	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}

	if !strings.Contains(err.Error(), "server.num_mpc_sockets") {
		t.Errorf("error %q should name the missing key", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}

	if cerr.Path != path {
		t.Errorf("error path = %q, want %q", cerr.Path, path)
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "[address\nclient = "))
	if err == nil {
		t.Fatal("expected error for malformed document")
	}

	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{
			"zero gsize",
			strings.Replace(validTOML, "gsize = 5", "gsize = 0", 1),
		},
		{
			"negative sockets",
			strings.Replace(validTOML,
				"num_mpc_sockets = 4", "num_mpc_sockets = -1", 1),
		},
		{
			"port out of range",
			validTOML + "\n[network]\nalice_port = 70000\n",
		},
		{
			"empty server bin",
			strings.Replace(validTOML,
				`bin = "server-baseline"`, `bin = ""`, 1),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.doc)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSampleRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSample(&buf); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}

	cfg, err := Load(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}

	if want := Default(); !reflect.DeepEqual(*cfg, want) {
		t.Errorf("round-tripped sample = %+v, want %+v", *cfg, want)
	}
}
