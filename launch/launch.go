// Package launch renders the shell command lines that start the
// benchmark processes described by a configuration: the meta client,
// the Alice and Bob server roles, and optionally the retrieval of
// Bob's profiling artifact. Nothing is executed; the commands are
// meant to be pasted on the respective machines.
package launch

import (
	"fmt"

	"github.com/ucbsky/elsa/config"
)

// All benchmark binaries are built for the machine they run on.
const rustFlags = "RUSTFLAGS='-C target-cpu=native'"

// Plan holds the rendered command lines for one benchmark run.
// FlamegraphFetch is empty unless Bob runs under the profiler.
type Plan struct {
	Client          string `json:"client"`
	Alice           string `json:"alice"`
	Bob             string `json:"bob"`
	FlamegraphFetch string `json:"flamegraph_fetch,omitempty"`
}

// Build renders the launch plan for cfg. It is pure: the same
// configuration always yields the same plan.
func Build(cfg *config.Config) Plan {
	plan := Plan{
		Client: fmt.Sprintf(
			"%s cargo run --release --package %s %s  -- %s -g %d -n %d -a %s:%d -b %s:%d -i %d",
			rustFlags,
			cfg.Client.Bin,
			cfg.Client.BuildFlags,
			cfg.Client.RunFlags,
			cfg.Parameters.GSize,
			cfg.Parameters.NumClients,
			cfg.Address.Alice, cfg.Network.AlicePort,
			cfg.Address.Bob, cfg.Network.BobPort,
			cfg.Parameters.InputSize,
		),
		Alice: fmt.Sprintf(
			"%s %s --package %s %s  -- -g %d -n %d -m %d -p %d -s %d -i %d %s",
			rustFlags,
			runPrefix(cfg.Server.FlamegraphAlice),
			cfg.Server.Bin,
			cfg.Server.BuildFlags,
			cfg.Parameters.GSize,
			cfg.Parameters.NumClients,
			cfg.Network.MetaPort,
			cfg.Network.AlicePort,
			cfg.Server.NumMPCSockets,
			cfg.Parameters.InputSize,
			cfg.Server.RunFlags,
		),
		// Bob dials Alice's meta port instead of binding it locally.
		Bob: fmt.Sprintf(
			"%s %s --package %s %s  -- -g %d -n %d -m %s:%d -b -p %d -s %d -i %d %s",
			rustFlags,
			runPrefix(cfg.Server.FlamegraphBob),
			cfg.Server.Bin,
			cfg.Server.BuildFlags,
			cfg.Parameters.GSize,
			cfg.Parameters.NumClients,
			cfg.Address.Alice, cfg.Network.MetaPort,
			cfg.Network.BobPort,
			cfg.Server.NumMPCSockets,
			cfg.Parameters.InputSize,
			cfg.Server.RunFlags,
		),
	}

	if cfg.Server.FlamegraphBob {
		plan.FlamegraphFetch = fmt.Sprintf("scp -i %s %s@%s:%s %s",
			cfg.Flamegraph.KeyFile,
			cfg.Flamegraph.RemoteUser,
			cfg.Address.Bob,
			cfg.Flamegraph.RemotePath,
			cfg.Flamegraph.LocalDest,
		)
	}

	return plan
}

// runPrefix selects how a server role is launched. Profiled roles go
// through cargo flamegraph, which leaves the SVG in the crate root.
func runPrefix(flamegraph bool) string {
	if flamegraph {
		return "cargo flamegraph"
	}

	return "cargo run --release"
}
