package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"sigs.k8s.io/controller-runtime/pkg/client"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

// ErrInvalidEncoding is returned by Object.ReadValue when a byte value is not valid UTF-8.
var ErrInvalidEncoding = errors.New("value is not valid UTF-8")

// Object is a Secret or ConfigMap seen as a flat key/value map with annotations.
type Object interface {
	// Kind reports which resource kind backs the object.
	Kind() shoebillv1alpha1.Kind
	// Raw returns the underlying API object.
	Raw() client.Object

	ReadValue(key string) (string, bool, error)
	// WriteValue upserts key, overwriting any previous value.
	WriteValue(key, value string)
	// DeleteValue removes key and reports whether it was present.
	DeleteValue(key string) bool
	// Keys returns the data keys in sorted order.
	Keys() []string

	Annotation(key string) (string, bool)
	SetAnnotation(key, value string)
	RemoveAnnotation(key string) bool
}

// Accessor performs API round trips for one resource kind.
type Accessor interface {
	Kind() shoebillv1alpha1.Kind
	// New returns an empty, not yet persisted object.
	New(namespace, name string) Object
	// Get fetches the object. A missing object surfaces as an API NotFound error.
	Get(ctx context.Context, namespace, name string) (Object, error)
	Create(ctx context.Context, obj Object) (Object, error)
	// Replace writes the whole object back. The resourceVersion of obj is
	// checked by the API server, so a concurrent update fails with a conflict.
	Replace(ctx context.Context, obj Object) (Object, error)
}

// For returns the accessor for kind.
func For(c client.Client, kind shoebillv1alpha1.Kind) (Accessor, error) {
	switch kind {
	case shoebillv1alpha1.KindSecret:
		return &secretAccessor{client: c}, nil
	case shoebillv1alpha1.KindConfigMap:
		return &configMapAccessor{client: c}, nil
	default:
		return nil, fmt.Errorf("unsupported resource kind %q", kind)
	}
}

func annotation(obj client.Object, key string) (string, bool) {
	v, ok := obj.GetAnnotations()[key]
	return v, ok
}

func setAnnotation(obj client.Object, key, value string) {
	annotations := obj.GetAnnotations()
	if annotations == nil {
		annotations = make(map[string]string)
	}
	annotations[key] = value
	obj.SetAnnotations(annotations)
}

func removeAnnotation(obj client.Object, key string) bool {
	annotations := obj.GetAnnotations()
	if _, ok := annotations[key]; !ok {
		return false
	}
	delete(annotations, key)
	obj.SetAnnotations(annotations)
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
