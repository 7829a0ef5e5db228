package materialize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	shoetest "github.com/badhouseplants/shoebill/internal/testing"
)

func TestResolveTargets(t *testing.T) {
	scheme := shoetest.NewScheme()
	ctx := context.Background()

	t.Run("creates missing targets owned by the ConfigSet", func(t *testing.T) {
		cs := shoetest.LiteralConfigSet()
		c := shoetest.NewFakeClientBuilder(scheme, cs).Build()

		set, err := ResolveTargets(ctx, c, scheme, cs, cs.Spec.Targets)
		require.NoError(t, err)
		assert.Equal(t, []string{"creds"}, set.Created)
		require.Contains(t, set.Secrets, "creds")
		assert.Empty(t, set.ConfigMaps)

		secret := &corev1.Secret{}
		require.NoError(t, c.Get(ctx, types.NamespacedName{Namespace: "prod", Name: "db-creds"}, secret))
		require.Len(t, secret.OwnerReferences, 1)
		ref := secret.OwnerReferences[0]
		assert.Equal(t, "app-config", ref.Name)
		assert.Equal(t, "ConfigSet", ref.Kind)
		assert.Equal(t, shoebillv1alpha1.GroupVersion.String(), ref.APIVersion)
		assert.Equal(t, cs.UID, ref.UID)
		assert.Empty(t, secret.Data)
	})

	t.Run("uses existing targets without taking ownership", func(t *testing.T) {
		cs := shoetest.NewConfigSetBuilder("app-config", "prod").
			WithTarget("settings", shoebillv1alpha1.KindConfigMap, "app-settings").
			Build()
		existing := shoetest.ConfigMap("prod", "app-settings", map[string]string{"unrelated": "keep"})
		c := shoetest.NewFakeClientBuilder(scheme, cs, existing).Build()

		set, err := ResolveTargets(ctx, c, scheme, cs, cs.Spec.Targets)
		require.NoError(t, err)
		assert.Empty(t, set.Created)

		obj, ok := set.Lookup(shoebillv1alpha1.KindConfigMap, "settings")
		require.True(t, ok)
		assert.Empty(t, obj.Raw().GetOwnerReferences())
		assert.Equal(t, []string{"unrelated"}, obj.Keys())
	})

	t.Run("get failures other than not found", func(t *testing.T) {
		cs := shoetest.LiteralConfigSet()
		boom := errors.New("etcdserver: request timed out")
		c := shoetest.NewFakeClientBuilder(scheme, cs).WithInterceptorFuncs(interceptor.Funcs{
			Get: func(context.Context, client.WithWatch, client.ObjectKey, client.Object, ...client.GetOption) error {
				return boom
			},
		}).Build()

		_, err := ResolveTargets(ctx, c, scheme, cs, cs.Spec.Targets)
		var storeErr *ResourceStoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "get", storeErr.Op)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("create failures", func(t *testing.T) {
		cs := shoetest.LiteralConfigSet()
		c := shoetest.NewFakeClientBuilder(scheme, cs).WithInterceptorFuncs(interceptor.Funcs{
			Create: func(context.Context, client.WithWatch, client.Object, ...client.CreateOption) error {
				return errors.New("forbidden")
			},
		}).Build()

		_, err := ResolveTargets(ctx, c, scheme, cs, cs.Spec.Targets)
		var storeErr *ResourceStoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "create", storeErr.Op)
		assert.Equal(t, "db-creds", storeErr.Name)
	})
}

func TestTargetSetAll(t *testing.T) {
	scheme := shoetest.NewScheme()
	cs := shoetest.NewConfigSetBuilder("app-config", "prod").
		WithTarget("b-cm", shoebillv1alpha1.KindConfigMap, "cm-b").
		WithTarget("z-secret", shoebillv1alpha1.KindSecret, "secret-z").
		WithTarget("a-cm", shoebillv1alpha1.KindConfigMap, "cm-a").
		Build()
	c := shoetest.NewFakeClientBuilder(scheme, cs).Build()

	set, err := ResolveTargets(context.Background(), c, scheme, cs, cs.Spec.Targets)
	require.NoError(t, err)

	var names []string
	for _, target := range set.All() {
		names = append(names, target.Name)
	}
	assert.Equal(t, []string{"z-secret", "a-cm", "b-cm"}, names)
}
