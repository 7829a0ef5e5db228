package controller

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/api/equality"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	clientretry "k8s.io/client-go/util/retry"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	"github.com/badhouseplants/shoebill/internal/operator/materialize"
)

// updateStatus records the outcome of an apply pass on the ConfigSet.
// The latest object is re-read on every attempt so a conflicting spec
// update does not lose the status. Failures are only logged.
func (r *ConfigSetReconciler) updateStatus(ctx context.Context, configSet *shoebillv1alpha1.ConfigSet, applyErr error) {
	logger := log.FromContext(ctx)

	err := clientretry.RetryOnConflict(clientretry.DefaultRetry, func() error {
		latest := &shoebillv1alpha1.ConfigSet{}
		if err := r.Get(ctx, client.ObjectKeyFromObject(configSet), latest); err != nil {
			return err
		}

		status := latest.Status.DeepCopy()
		setReadyStatus(status, configSet.Generation, len(configSet.Spec.Templates), len(configSet.Spec.Targets), applyErr)
		if equality.Semantic.DeepEqual(status, &latest.Status) {
			return nil
		}

		latest.Status = *status
		return r.Status().Update(ctx, latest)
	})
	if err != nil {
		logger.Error(err, "failed to update status")
	}
}

// setReadyStatus sets the Ready flag and condition from the result of a pass.
func setReadyStatus(status *shoebillv1alpha1.ConfigSetStatus, generation int64, templates, targets int, applyErr error) {
	status.ObservedGeneration = generation
	status.Ready = applyErr == nil

	condition := metav1.Condition{
		Type:               shoebillv1alpha1.ConditionReady,
		ObservedGeneration: generation,
	}
	if applyErr != nil {
		condition.Status = metav1.ConditionFalse
		condition.Reason = materialize.Reason(applyErr)
		condition.Message = applyErr.Error()
	} else {
		condition.Status = metav1.ConditionTrue
		condition.Reason = EventReasonApplied
		condition.Message = fmt.Sprintf("%d templates rendered into %d targets", templates, targets)
	}
	meta.SetStatusCondition(&status.Conditions, condition)
}
