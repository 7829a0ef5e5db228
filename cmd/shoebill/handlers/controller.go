// Package handlers implements the shoebill CLI commands.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	"github.com/badhouseplants/shoebill/internal/config"
	"github.com/badhouseplants/shoebill/internal/operator/controller"
)

// Factory functions for dependency injection in tests.
var (
	getRESTConfig = ctrl.GetConfig
	newManager    = func(cfg *rest.Config, opts ctrl.Options) (ctrl.Manager, error) {
		return ctrl.NewManager(cfg, opts)
	}
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// Controller runs the ConfigSet controller until ctx is cancelled.
func Controller(ctx context.Context, cfg *config.Controller, zapOpts *zap.Options, version string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	zapOpts.Development = zapOpts.Development || cfg.Debug || isInteractiveTTY()
	ctrl.SetLogger(zap.New(zap.UseFlagOptions(zapOpts)))
	setupLog := ctrl.Log.WithName("setup")

	setupLog.Info("starting shoebill controller",
		"version", version,
		"namespace", cfg.Namespace,
		"requeueDelay", cfg.RequeueDelay,
		"leaderElection", cfg.LeaderElection,
	)

	restConfig, err := getRESTConfig()
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	mgr, err := newManager(restConfig, managerOptions(cfg))
	if err != nil {
		return fmt.Errorf("unable to create manager: %w", err)
	}

	if err := controller.NewConfigSetReconciler(
		mgr.GetClient(),
		mgr.GetScheme(),
		mgr.GetEventRecorderFor("configset-controller"),
		controller.WithMetrics(cfg.MetricsAddr != "0"),
		controller.WithRequeueDelay(cfg.RequeueDelay),
		controller.WithMaxConcurrentReconciles(cfg.MaxConcurrentReconciles),
	).SetupWithManager(mgr); err != nil {
		return fmt.Errorf("unable to create controller ConfigSet: %w", err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("configsets", controller.ConfigSetAPICheck(mgr.GetAPIReader())); err != nil {
		return fmt.Errorf("unable to set up ready check: %w", err)
	}

	setupLog.Info("starting manager")
	if err := mgr.Start(ctx); err != nil {
		return fmt.Errorf("problem running manager: %w", err)
	}
	setupLog.Info("manager stopped")
	return nil
}

// managerOptions maps the controller settings to manager options.
func managerOptions(cfg *config.Controller) ctrl.Options {
	opts := ctrl.Options{
		Scheme: shoebillv1alpha1.Scheme,
		Metrics: metricsserver.Options{
			BindAddress: cfg.MetricsAddr,
		},
		HealthProbeBindAddress: cfg.ProbeAddr,
		LeaderElection:         cfg.LeaderElection,
		LeaderElectionID:       cfg.LeaderElectionID,
		// LeaderElectionReleaseOnCancel defines if the leader should step down voluntarily
		// when the Manager ends. This requires the binary to immediately end when the
		// Manager is stopped, otherwise, this setting is unsafe.
		LeaderElectionReleaseOnCancel: true,
	}
	if cfg.Namespace != "" {
		opts.Cache = cache.Options{
			DefaultNamespaces: map[string]cache.Config{cfg.Namespace: {}},
		}
	}
	return opts
}
