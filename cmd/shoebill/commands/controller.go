package commands

import (
	"flag"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/badhouseplants/shoebill/cmd/shoebill/handlers"
	"github.com/badhouseplants/shoebill/internal/config"
)

// Controller returns the command that runs the ConfigSet controller.
//
// Settings are read from defaults, then the --config file, then SHOEBILL_*
// environment variables, then the flags given on the command line.
//
// Optional flags:
//
//	--config, -c: Path to a controller configuration YAML file
//	--metrics-bind-address: Metrics endpoint address, "0" disables it (default: :8080)
//	--health-probe-bind-address: Probe endpoint address (default: :8081)
//	--leader-elect: Enable leader election (default: true)
//	--leader-election-id: Name of the leader election lease (default: shoebill-controller)
//	--requeue-delay: Wait before a failed ConfigSet is retried (default: 5m)
//	--max-concurrent-reconciles: ConfigSets reconciled in parallel (default: 1)
//	--namespace: Only watch ConfigSets in this namespace (default: all)
//	--debug: Development logging
func Controller() *cobra.Command {
	var configPath string
	flagCfg := config.DefaultController()
	zapOpts := zap.Options{}

	cmd := &cobra.Command{
		Use:   "controller",
		Short: "Run the ConfigSet controller",
		Long: `Run the ConfigSet controller against the cluster of the current kubeconfig
or the in-cluster service account.

Examples:
  # Run locally against the current context without leader election
  shoebill controller --leader-elect=false --debug

  # Watch a single namespace and retry failures every minute
  shoebill controller --namespace apps --requeue-delay 1m`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadController(configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd.Flags(), cfg, &flagCfg)
			return handlers.Controller(cmd.Context(), cfg, &zapOpts, version)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to controller configuration file")
	flags.StringVar(&flagCfg.MetricsAddr, "metrics-bind-address", flagCfg.MetricsAddr, "The address the metric endpoint binds to, \"0\" disables it")
	flags.StringVar(&flagCfg.ProbeAddr, "health-probe-bind-address", flagCfg.ProbeAddr, "The address the probe endpoint binds to")
	flags.BoolVar(&flagCfg.LeaderElection, "leader-elect", flagCfg.LeaderElection, "Enable leader election for controller manager")
	flags.StringVar(&flagCfg.LeaderElectionID, "leader-election-id", flagCfg.LeaderElectionID, "The name of the leader election resource")
	flags.DurationVar(&flagCfg.RequeueDelay, "requeue-delay", flagCfg.RequeueDelay, "Delay before a failed ConfigSet is retried")
	flags.IntVar(&flagCfg.MaxConcurrentReconciles, "max-concurrent-reconciles", flagCfg.MaxConcurrentReconciles, "Number of ConfigSets reconciled in parallel")
	flags.StringVar(&flagCfg.Namespace, "namespace", flagCfg.Namespace, "Only watch ConfigSets in this namespace")
	flags.BoolVar(&flagCfg.Debug, "debug", flagCfg.Debug, "Enable development logging")

	goFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	zapOpts.BindFlags(goFlags)
	flags.AddGoFlagSet(goFlags)

	return cmd
}

// applyFlagOverrides copies every flag the user set explicitly from set into cfg.
func applyFlagOverrides(flags *pflag.FlagSet, cfg, set *config.Controller) {
	overrides := map[string]func(){
		"metrics-bind-address":      func() { cfg.MetricsAddr = set.MetricsAddr },
		"health-probe-bind-address": func() { cfg.ProbeAddr = set.ProbeAddr },
		"leader-elect":              func() { cfg.LeaderElection = set.LeaderElection },
		"leader-election-id":        func() { cfg.LeaderElectionID = set.LeaderElectionID },
		"requeue-delay":             func() { cfg.RequeueDelay = set.RequeueDelay },
		"max-concurrent-reconciles": func() { cfg.MaxConcurrentReconciles = set.MaxConcurrentReconciles },
		"namespace":                 func() { cfg.Namespace = set.Namespace },
		"debug":                     func() { cfg.Debug = set.Debug },
	}
	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}
}
