package handlers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/badhouseplants/shoebill/internal/config"
)

// stubFactories swaps the injected factories for the duration of the test.
func stubFactories(t *testing.T, restErr, mgrErr error) *ctrl.Options {
	t.Helper()
	origREST, origManager, origTTY := getRESTConfig, newManager, isInteractiveTTY
	t.Cleanup(func() {
		getRESTConfig, newManager, isInteractiveTTY = origREST, origManager, origTTY
	})

	var captured ctrl.Options
	getRESTConfig = func() (*rest.Config, error) {
		if restErr != nil {
			return nil, restErr
		}
		return &rest.Config{Host: "https://127.0.0.1:6443"}, nil
	}
	newManager = func(_ *rest.Config, opts ctrl.Options) (ctrl.Manager, error) {
		captured = opts
		return nil, mgrErr
	}
	isInteractiveTTY = func() bool { return false }
	return &captured
}

func TestController_InvalidConfig(t *testing.T) {
	stubFactories(t, nil, nil)

	cfg := config.DefaultController()
	cfg.RequeueDelay = 0

	err := Controller(context.Background(), &cfg, &zap.Options{}, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "requeueDelay")
}

func TestController_RESTConfigError(t *testing.T) {
	stubFactories(t, errors.New("no kubeconfig"), nil)

	cfg := config.DefaultController()
	err := Controller(context.Background(), &cfg, &zap.Options{}, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load kubeconfig")
}

func TestController_ManagerError(t *testing.T) {
	captured := stubFactories(t, nil, errors.New("boom"))

	cfg := config.DefaultController()
	cfg.Namespace = "apps"
	cfg.MetricsAddr = "0"

	err := Controller(context.Background(), &cfg, &zap.Options{}, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create manager")

	assert.Equal(t, "0", captured.Metrics.BindAddress)
	assert.Contains(t, captured.Cache.DefaultNamespaces, "apps")
}

func TestManagerOptions(t *testing.T) {
	t.Run("defaults watch all namespaces", func(t *testing.T) {
		cfg := config.DefaultController()
		opts := managerOptions(&cfg)

		assert.NotNil(t, opts.Scheme)
		assert.Equal(t, config.DefaultMetricsAddr, opts.Metrics.BindAddress)
		assert.Equal(t, config.DefaultProbeAddr, opts.HealthProbeBindAddress)
		assert.True(t, opts.LeaderElection)
		assert.Equal(t, config.DefaultLeaderElectionID, opts.LeaderElectionID)
		assert.True(t, opts.LeaderElectionReleaseOnCancel)
		assert.Empty(t, opts.Cache.DefaultNamespaces)
	})

	t.Run("namespace restricts the cache", func(t *testing.T) {
		cfg := config.DefaultController()
		cfg.Namespace = "apps"
		cfg.LeaderElection = false

		opts := managerOptions(&cfg)

		assert.False(t, opts.LeaderElection)
		require.Len(t, opts.Cache.DefaultNamespaces, 1)
		assert.Contains(t, opts.Cache.DefaultNamespaces, "apps")
	})
}

func TestManifests(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Manifests(&out, config.DefaultManifests()))

	assert.Contains(t, out.String(), "kind: CustomResourceDefinition")
	assert.Contains(t, out.String(), "kind: ClusterRole")
	assert.Contains(t, out.String(), "kind: Deployment")
}

func TestManifests_Invalid(t *testing.T) {
	cfg := config.DefaultManifests()
	cfg.Image = ""

	var out bytes.Buffer
	err := Manifests(&out, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image is required")
}
