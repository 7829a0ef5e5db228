package controller

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/log"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	"github.com/badhouseplants/shoebill/internal/operator/materialize"
	"github.com/badhouseplants/shoebill/internal/operator/store"
)

// apply renders every template of the ConfigSet into its targets and
// writes the targets back. Nothing is written back if inputs, targets or
// rendering fail; targets created during resolution stay in place.
func (r *ConfigSetReconciler) apply(ctx context.Context, configSet *shoebillv1alpha1.ConfigSet) error {
	logger := log.FromContext(ctx)
	spec := configSet.Spec

	logger.V(1).Info("resolving inputs", "count", len(spec.Inputs))
	values, err := materialize.ResolveInputs(ctx, r.Client, configSet.Namespace, spec.Inputs)
	if err != nil {
		return &OrchestrationError{Phase: PhaseResolveInputs, Err: err}
	}

	logger.V(1).Info("resolving targets", "count", len(spec.Targets))
	set, err := materialize.ResolveTargets(ctx, r.Client, r.Scheme, configSet, spec.Targets)
	if err != nil {
		return &OrchestrationError{Phase: PhaseResolveTargets, Err: err}
	}
	r.recordTargetsCreated(configSet.Name, len(set.Created))

	logger.V(1).Info("rendering templates", "count", len(spec.Templates))
	err = materialize.BuildTemplates(ctx, spec.Templates, set, spec.Targets, materialize.Scope(spec.Inputs, values), configSet.Name)
	if err != nil {
		r.recordTemplatesRendered(resultError, 1)
		return &OrchestrationError{Phase: PhaseBuildTemplates, Err: err}
	}
	r.recordTemplatesRendered(resultSuccess, len(spec.Templates))

	if err := r.writeBack(ctx, set); err != nil {
		return &OrchestrationError{Phase: PhaseWriteBack, Err: err}
	}

	logger.Info("ConfigSet applied", "templates", len(spec.Templates), "targets", len(spec.Targets))
	return nil
}

// writeBack replaces every resolved target with its mutated copy.
// A stale resourceVersion fails with a conflict and is not retried in-pass.
func (r *ConfigSetReconciler) writeBack(ctx context.Context, set *materialize.TargetSet) error {
	logger := log.FromContext(ctx)

	for _, target := range set.All() {
		accessor, err := store.For(r.Client, target.Object.Kind())
		if err != nil {
			return err
		}

		raw := target.Object.Raw()
		if _, err := accessor.Replace(ctx, target.Object); err != nil {
			r.recordTargetWritten(target.Object.Kind(), resultError)
			return &materialize.ResourceStoreError{
				Op:        "update",
				Kind:      target.Object.Kind(),
				Namespace: raw.GetNamespace(),
				Name:      raw.GetName(),
				Err:       err,
			}
		}
		r.recordTargetWritten(target.Object.Kind(), resultSuccess)
		logger.V(1).Info("target written", "target", target.Name, "kind", target.Object.Kind(), "name", raw.GetName())
	}
	return nil
}
