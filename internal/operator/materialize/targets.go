package materialize

import (
	"context"
	"fmt"
	"sort"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	"github.com/badhouseplants/shoebill/internal/operator/store"
)

// TargetSet holds the resolved target resources of a ConfigSet keyed by
// logical target name, one map per resource kind.
type TargetSet struct {
	Secrets    map[string]store.Object
	ConfigMaps map[string]store.Object

	// Created lists the logical names whose backing resource was created
	// during resolution.
	Created []string
}

// NamedTarget is a resolved target together with its logical name.
type NamedTarget struct {
	Name   string
	Object store.Object
}

func newTargetSet() *TargetSet {
	return &TargetSet{
		Secrets:    make(map[string]store.Object),
		ConfigMaps: make(map[string]store.Object),
	}
}

func (s *TargetSet) add(name string, obj store.Object) {
	switch obj.Kind() {
	case shoebillv1alpha1.KindSecret:
		s.Secrets[name] = obj
	case shoebillv1alpha1.KindConfigMap:
		s.ConfigMaps[name] = obj
	}
}

// Lookup returns the resource bound to a logical target name of the given kind.
func (s *TargetSet) Lookup(kind shoebillv1alpha1.Kind, name string) (store.Object, bool) {
	var obj store.Object
	var ok bool
	switch kind {
	case shoebillv1alpha1.KindSecret:
		obj, ok = s.Secrets[name]
	case shoebillv1alpha1.KindConfigMap:
		obj, ok = s.ConfigMaps[name]
	}
	return obj, ok
}

// All returns every resolved target, Secrets first, each group ordered by
// logical name.
func (s *TargetSet) All() []NamedTarget {
	all := make([]NamedTarget, 0, len(s.Secrets)+len(s.ConfigMaps))
	for _, group := range []map[string]store.Object{s.Secrets, s.ConfigMaps} {
		names := make([]string, 0, len(group))
		for name := range group {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			all = append(all, NamedTarget{Name: name, Object: group[name]})
		}
	}
	return all
}

// ResolveTargets fetches the backing resource of every declared target.
//
// A resource that already exists is used as-is. A missing one is created
// empty with a controller reference to owner, so it is garbage collected
// together with the ConfigSet. The returned objects are meant to be mutated by
// BuildTemplates or RemoveTemplates and written back by the caller.
func ResolveTargets(ctx context.Context, c client.Client, scheme *runtime.Scheme, owner *shoebillv1alpha1.ConfigSet, targets []shoebillv1alpha1.TargetWithName) (*TargetSet, error) {
	logger := log.FromContext(ctx)
	namespace := owner.Namespace

	set := newTargetSet()
	for _, target := range targets {
		accessor, err := store.For(c, target.Target.Kind)
		if err != nil {
			return nil, &ConfigurationError{
				Field:  fmt.Sprintf("spec.targets[%s].target.kind", target.Name),
				Value:  string(target.Target.Kind),
				Reason: "unsupported kind",
			}
		}

		obj, err := accessor.Get(ctx, namespace, target.Target.Name)
		switch {
		case err == nil:
			logger.V(1).Info("using existing target", "target", target.Name, "kind", target.Target.Kind, "name", target.Target.Name)
		case apierrors.IsNotFound(err):
			obj, err = createTarget(ctx, accessor, scheme, owner, target.Target.Name)
			if err != nil {
				return nil, err
			}
			set.Created = append(set.Created, target.Name)
			logger.Info("created target", "target", target.Name, "kind", target.Target.Kind, "name", target.Target.Name)
		default:
			return nil, &ResourceStoreError{Op: "get", Kind: target.Target.Kind, Namespace: namespace, Name: target.Target.Name, Err: err}
		}

		set.add(target.Name, obj)
	}
	return set, nil
}

func createTarget(ctx context.Context, accessor store.Accessor, scheme *runtime.Scheme, owner *shoebillv1alpha1.ConfigSet, name string) (store.Object, error) {
	obj := accessor.New(owner.Namespace, name)
	if err := controllerutil.SetControllerReference(owner, obj.Raw(), scheme); err != nil {
		return nil, fmt.Errorf("failed to set owner reference on %s %s: %w", accessor.Kind(), name, err)
	}

	created, err := accessor.Create(ctx, obj)
	if err != nil {
		return nil, &ResourceStoreError{Op: "create", Kind: accessor.Kind(), Namespace: owner.Namespace, Name: name, Err: err}
	}
	return created, nil
}
