package controller

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	"github.com/badhouseplants/shoebill/internal/operator/materialize"
	"github.com/badhouseplants/shoebill/internal/util/labels"
)

// cleanup removes the keys rendered by a deleted ConfigSet from its targets
// and then releases the finalizer. Inputs are still resolved first, so a
// missing input blocks cleanup until it is restored.
func (r *ConfigSetReconciler) cleanup(ctx context.Context, configSet *shoebillv1alpha1.ConfigSet) error {
	logger := log.FromContext(ctx)
	spec := configSet.Spec

	if _, err := materialize.ResolveInputs(ctx, r.Client, configSet.Namespace, spec.Inputs); err != nil {
		return &OrchestrationError{Phase: PhaseResolveInputs, Err: err}
	}

	set, err := materialize.ResolveTargets(ctx, r.Client, r.Scheme, configSet, spec.Targets)
	if err != nil {
		return &OrchestrationError{Phase: PhaseResolveTargets, Err: err}
	}
	r.recordTargetsCreated(configSet.Name, len(set.Created))

	if err := materialize.RemoveTemplates(ctx, spec.Templates, set, spec.Targets); err != nil {
		return &OrchestrationError{Phase: PhaseRemoveTemplates, Err: err}
	}

	if err := r.writeBack(ctx, set); err != nil {
		return &OrchestrationError{Phase: PhaseWriteBack, Err: err}
	}

	controllerutil.RemoveFinalizer(configSet, labels.FinalizerCleanup)
	if err := r.Update(ctx, configSet); err != nil {
		return &OrchestrationError{Phase: PhaseRemoveFinalizer, Err: err}
	}

	logger.Info("ConfigSet cleaned up", "templates", len(spec.Templates), "targets", len(spec.Targets))
	return nil
}
