package materialize

import (
	"errors"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

// ResourceStoreError is a failed API call against a Secret or ConfigMap.
// It covers not-found and optimistic-concurrency conflicts.
type ResourceStoreError struct {
	Op        string
	Kind      shoebillv1alpha1.Kind
	Namespace string
	Name      string
	Err       error
}

func (e *ResourceStoreError) Error() string {
	return fmt.Sprintf("failed to %s %s %s/%s: %v", e.Op, e.Kind, e.Namespace, e.Name, e.Err)
}

func (e *ResourceStoreError) Unwrap() error { return e.Err }

// IsNotFound reports whether the resource did not exist.
func (e *ResourceStoreError) IsNotFound() bool { return apierrors.IsNotFound(e.Err) }

// IsConflict reports whether the resource was modified concurrently.
func (e *ResourceStoreError) IsConflict() bool { return apierrors.IsConflict(e.Err) }

// MissingKeyError is a declared input key absent from its source resource.
type MissingKeyError struct {
	Kind shoebillv1alpha1.Kind
	Name string
	Key  string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key %q not found in %s %s", e.Key, e.Kind, e.Name)
}

// EncodingError is a Secret value that is not valid UTF-8 text.
type EncodingError struct {
	Name string
	Key  string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("key %q of Secret %s: %v", e.Key, e.Name, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// RenderError is a template that references unknown variables or is malformed.
type RenderError struct {
	Template string
	Missing  []string
	Reason   string
}

func (e *RenderError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("template %q: missing variables: %s", e.Template, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("template %q: %s", e.Template, e.Reason)
}

// ConfigurationError is a ConfigSet that cannot be applied as written.
// Retrying does not help until the ConfigSet is changed.
type ConfigurationError struct {
	// Field is the offending spec field, e.g. spec.templates[DB_PASSWORD].target
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.Field, e.Reason, e.Value)
}

// Reason maps an error to a CamelCase reason for status conditions and events.
func Reason(err error) string {
	var (
		storeErr  *ResourceStoreError
		keyErr    *MissingKeyError
		encErr    *EncodingError
		renderErr *RenderError
		cfgErr    *ConfigurationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &keyErr):
		return "MissingKey"
	case errors.As(err, &encErr):
		return "InvalidEncoding"
	case errors.As(err, &renderErr):
		return "RenderFailed"
	case errors.As(err, &cfgErr):
		return "InvalidConfiguration"
	case errors.As(err, &storeErr):
		if storeErr.IsNotFound() {
			return "NotFound"
		}
		if storeErr.IsConflict() {
			return "Conflict"
		}
		return "ResourceStoreError"
	default:
		return "Failed"
	}
}
