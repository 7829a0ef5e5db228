package controller

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	"github.com/badhouseplants/shoebill/internal/util/labels"
	"github.com/badhouseplants/shoebill/internal/util/retry"
)

// Event reasons emitted on ConfigSets.
const (
	EventReasonApplied         = "Applied"
	EventReasonCleanedUp       = "CleanedUp"
	EventReasonReconcileFailed = "ReconcileFailed"
)

// ConfigSetReconciler reconciles a ConfigSet object.
type ConfigSetReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder

	enableMetrics           bool
	maxConcurrentReconciles int
	rateLimiter             *retry.FixedDelay[reconcile.Request]
}

// Option configures a ConfigSetReconciler.
type Option func(*ConfigSetReconciler)

// WithMetrics enables or disables Prometheus metrics.
func WithMetrics(enabled bool) Option {
	return func(r *ConfigSetReconciler) {
		r.enableMetrics = enabled
	}
}

// WithRequeueDelay sets the fixed delay before a failed ConfigSet is retried.
func WithRequeueDelay(d time.Duration) Option {
	return func(r *ConfigSetReconciler) {
		r.rateLimiter = retry.NewFixedDelay[reconcile.Request](retry.WithDelay(d))
	}
}

// WithMaxConcurrentReconciles sets how many ConfigSets are reconciled in parallel.
func WithMaxConcurrentReconciles(n int) Option {
	return func(r *ConfigSetReconciler) {
		if n > 0 {
			r.maxConcurrentReconciles = n
		}
	}
}

// NewConfigSetReconciler creates a new ConfigSetReconciler.
func NewConfigSetReconciler(c client.Client, scheme *runtime.Scheme, recorder record.EventRecorder, opts ...Option) *ConfigSetReconciler {
	r := &ConfigSetReconciler{
		Client:                  c,
		Scheme:                  scheme,
		Recorder:                recorder,
		enableMetrics:           true,
		maxConcurrentReconciles: 1,
		rateLimiter:             retry.NewFixedDelay[reconcile.Request](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// +kubebuilder:rbac:groups=shoebill.badhouseplants.net,resources=configsets,verbs=get;list;watch;update;patch
// +kubebuilder:rbac:groups=shoebill.badhouseplants.net,resources=configsets/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=shoebill.badhouseplants.net,resources=configsets/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch;create;update
// +kubebuilder:rbac:groups="",resources=configmaps,verbs=get;list;watch;create;update
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch

// Reconcile drives a ConfigSet through its finalizer state machine.
//
// A live ConfigSet first gets the cleanup finalizer and is applied on the
// next pass. A ConfigSet being deleted has its rendered keys removed from
// every target before the finalizer is released. Failures are returned so
// the rate limiter retries them after the configured delay.
func (r *ConfigSetReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)
	start := time.Now()

	configSet := &shoebillv1alpha1.ConfigSet{}
	if err := r.Get(ctx, req.NamespacedName, configSet); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		logger.Error(err, "unable to fetch ConfigSet")
		return ctrl.Result{}, err
	}

	if !configSet.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(configSet, labels.FinalizerCleanup) {
			return ctrl.Result{}, nil
		}
		return r.finish(ctx, configSet, actionCleanup, start, r.cleanup(ctx, configSet))
	}

	if !controllerutil.ContainsFinalizer(configSet, labels.FinalizerCleanup) {
		controllerutil.AddFinalizer(configSet, labels.FinalizerCleanup)
		var err error
		if updateErr := r.Update(ctx, configSet); updateErr != nil {
			err = &OrchestrationError{Phase: PhaseAddFinalizer, Err: updateErr}
		} else {
			logger.V(1).Info("added finalizer", "finalizer", labels.FinalizerCleanup)
		}
		return r.finish(ctx, configSet, actionFinalize, start, err)
	}

	applyErr := r.apply(ctx, configSet)
	r.updateStatus(ctx, configSet, applyErr)
	return r.finish(ctx, configSet, actionApply, start, applyErr)
}

// finish records the outcome of a pass and converts it into a result.
// Success awaits the next change; failure hands the request to the rate limiter.
func (r *ConfigSetReconciler) finish(ctx context.Context, configSet *shoebillv1alpha1.ConfigSet, action string, start time.Time, err error) (ctrl.Result, error) {
	duration := time.Since(start).Seconds()
	logger := log.FromContext(ctx)

	if err != nil {
		r.recordReconcile(configSet.Name, action, resultError, duration)
		logger.Error(err, "reconcile failed", "action", action, "retryAfter", r.rateLimiter.Delay())
		r.Recorder.Eventf(configSet, corev1.EventTypeWarning, EventReasonReconcileFailed, "%s failed: %v", action, err)
		return ctrl.Result{}, err
	}

	r.recordReconcile(configSet.Name, action, resultSuccess, duration)
	switch action {
	case actionApply:
		r.Recorder.Eventf(configSet, corev1.EventTypeNormal, EventReasonApplied,
			"Rendered %d templates into %d targets", len(configSet.Spec.Templates), len(configSet.Spec.Targets))
	case actionCleanup:
		r.Recorder.Event(configSet, corev1.EventTypeNormal, EventReasonCleanedUp, "Removed rendered keys from targets")
	}
	return ctrl.Result{}, nil
}

// SetupWithManager sets up the controller with the Manager.
//
// Only spec and finalizer changes trigger a pass. Status writes and changes
// to targets or inputs do not.
func (r *ConfigSetReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&shoebillv1alpha1.ConfigSet{}, builder.WithPredicates(
			predicate.Or[client.Object](predicate.GenerationChangedPredicate{}, finalizersChanged()),
		)).
		WithOptions(controller.Options{
			MaxConcurrentReconciles: r.maxConcurrentReconciles,
			RateLimiter:             r.rateLimiter,
		}).
		Complete(r)
}
