// Package main is the entry point for the shoebill binary.
//
// shoebill renders templates built from Secret and ConfigMap values into
// other Secrets and ConfigMaps, driven by ConfigSet custom resources.
//
// Commands: controller, manifests, version, completion.
//
// For detailed usage information, run:
//
//	shoebill --help
package main

import (
	"fmt"
	"os"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/badhouseplants/shoebill/cmd/shoebill/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctrl.SetupSignalHandler()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
