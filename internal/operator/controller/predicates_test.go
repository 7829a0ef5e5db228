package controller

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"
	"sigs.k8s.io/controller-runtime/pkg/event"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	shoetest "github.com/badhouseplants/shoebill/internal/testing"
	"github.com/badhouseplants/shoebill/internal/util/labels"
)

func TestFinalizersChanged(t *testing.T) {
	base := shoetest.LiteralConfigSet()
	withFinalizer := shoetest.NewConfigSetBuilder("app-config", "prod").WithFinalizers(labels.FinalizerCleanup).Build()

	tests := []struct {
		name string
		old  *shoebillv1alpha1.ConfigSet
		new  *shoebillv1alpha1.ConfigSet
		want bool
	}{
		{name: "finalizer added", old: base, new: withFinalizer, want: true},
		{name: "finalizer removed", old: withFinalizer, new: base, want: true},
		{name: "finalizers unchanged", old: withFinalizer, new: withFinalizer.DeepCopy(), want: false},
	}

	p := finalizersChanged()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Update(event.UpdateEvent{ObjectOld: tt.old, ObjectNew: tt.new}))
		})
	}

	t.Run("status-only update is filtered", func(t *testing.T) {
		updated := withFinalizer.DeepCopy()
		updated.Status.Ready = true
		assert.False(t, p.Update(event.UpdateEvent{ObjectOld: withFinalizer, ObjectNew: updated}))
	})
}

func TestSetReadyStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		status := &shoebillv1alpha1.ConfigSetStatus{}
		setReadyStatus(status, 3, 2, 1, nil)

		assert.True(t, status.Ready)
		assert.Equal(t, int64(3), status.ObservedGeneration)
		cond := meta.FindStatusCondition(status.Conditions, shoebillv1alpha1.ConditionReady)
		require.NotNil(t, cond)
		assert.Equal(t, metav1.ConditionTrue, cond.Status)
		assert.Equal(t, "2 templates rendered into 1 targets", cond.Message)
		assert.Equal(t, int64(3), cond.ObservedGeneration)
	})

	t.Run("failure replaces a previous success", func(t *testing.T) {
		status := &shoebillv1alpha1.ConfigSetStatus{}
		setReadyStatus(status, 1, 1, 1, nil)
		setReadyStatus(status, 2, 1, 1, &OrchestrationError{Phase: PhaseWriteBack, Err: errors.New("boom")})

		assert.False(t, status.Ready)
		require.Len(t, status.Conditions, 1)
		assert.Equal(t, metav1.ConditionFalse, status.Conditions[0].Status)
		assert.Equal(t, "Failed", status.Conditions[0].Reason)
		assert.Equal(t, "WriteBack: boom", status.Conditions[0].Message)
	})
}

func TestConfigSetAPICheck(t *testing.T) {
	t.Run("ready when ConfigSets can be listed", func(t *testing.T) {
		c := shoetest.NewFakeClientBuilder(shoetest.NewScheme(), shoetest.LiteralConfigSet()).Build()

		err := ConfigSetAPICheck(c)(httptest.NewRequest("GET", "/readyz", nil))
		assert.NoError(t, err)
	})

	t.Run("not ready when the list fails", func(t *testing.T) {
		c := shoetest.NewFakeClientBuilder(shoetest.NewScheme()).
			WithInterceptorFuncs(interceptor.Funcs{
				List: func(ctx context.Context, c client.WithWatch, list client.ObjectList, opts ...client.ListOption) error {
					return errors.New("no matches for kind ConfigSet")
				},
			}).
			Build()

		err := ConfigSetAPICheck(c)(httptest.NewRequest("GET", "/readyz", nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list ConfigSets")
	})
}
