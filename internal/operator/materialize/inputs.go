package materialize

import (
	"context"
	"errors"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	"github.com/badhouseplants/shoebill/internal/operator/store"
)

// ResolveInputs reads every declared input and returns the values templates
// can reference.
//
// Secret-sourced values are stored under their source key, ConfigMap-sourced
// values under the input's own name. Inputs are fetched one at a time and the
// first failure aborts resolution.
func ResolveInputs(ctx context.Context, c client.Client, namespace string, inputs []shoebillv1alpha1.InputWithName) (map[string]string, error) {
	logger := log.FromContext(ctx)

	values := make(map[string]string, len(inputs))
	for _, input := range inputs {
		logger.V(1).Info("populating data from input", "input", input.Name, "kind", input.From.Kind, "source", input.From.Name)

		accessor, err := store.For(c, input.From.Kind)
		if err != nil {
			return nil, &ConfigurationError{
				Field:  fmt.Sprintf("spec.inputs[%s].from.kind", input.Name),
				Value:  string(input.From.Kind),
				Reason: "unsupported kind",
			}
		}

		source, err := accessor.Get(ctx, namespace, input.From.Name)
		if err != nil {
			return nil, &ResourceStoreError{Op: "get", Kind: input.From.Kind, Namespace: namespace, Name: input.From.Name, Err: err}
		}

		value, ok, err := source.ReadValue(input.From.Key)
		if errors.Is(err, store.ErrInvalidEncoding) {
			return nil, &EncodingError{Name: input.From.Name, Key: input.From.Key, Err: err}
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &MissingKeyError{Kind: input.From.Kind, Name: input.From.Name, Key: input.From.Key}
		}

		values[variableName(input)] = value
	}
	return values, nil
}

// variableName is the name an input is exposed under to templates.
func variableName(input shoebillv1alpha1.InputWithName) string {
	if input.From.Kind == shoebillv1alpha1.KindSecret {
		return input.From.Key
	}
	return input.Name
}

// Scope returns the variables templates are rendered against: the resolved
// values plus, for every Secret-sourced input, its declared name as an alias
// unless that name is already taken.
func Scope(inputs []shoebillv1alpha1.InputWithName, values map[string]string) map[string]string {
	scope := make(map[string]string, len(values)+len(inputs))
	for k, v := range values {
		scope[k] = v
	}
	for _, input := range inputs {
		if input.From.Kind != shoebillv1alpha1.KindSecret {
			continue
		}
		if _, taken := scope[input.Name]; taken {
			continue
		}
		if v, ok := values[input.From.Key]; ok {
			scope[input.Name] = v
		}
	}
	return scope
}
