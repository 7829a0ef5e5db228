package materialize

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/log"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
	"github.com/badhouseplants/shoebill/internal/operator/store"
	"github.com/badhouseplants/shoebill/internal/util/labels"
)

// BuildTemplates renders every template against inputs and writes the result
// into its target under the template's name, overwriting a previous value and
// leaving unrelated keys alone. Every target that receives a value is
// annotated with the ConfigSet name.
//
// Targets are only mutated in memory. The first failure aborts the pass.
func BuildTemplates(ctx context.Context, templates []shoebillv1alpha1.Template, set *TargetSet, targets []shoebillv1alpha1.TargetWithName, inputs map[string]string, configSetName string) error {
	logger := log.FromContext(ctx)

	for _, template := range templates {
		logger.V(1).Info("building template", "template", template.Name, "target", template.Target)

		value, err := Render(template.Name, template.Template, inputs)
		if err != nil {
			return err
		}

		obj, err := targetFor(template, set, targets)
		if err != nil {
			return err
		}

		obj.WriteValue(template.Name, value)
		obj.SetAnnotation(labels.AnnotationWatchedBy, configSetName)
	}
	return nil
}

// RemoveTemplates deletes the key of every template from its target and drops
// the ownership annotation from each target it visits. The target resources
// themselves are kept.
func RemoveTemplates(ctx context.Context, templates []shoebillv1alpha1.Template, set *TargetSet, targets []shoebillv1alpha1.TargetWithName) error {
	logger := log.FromContext(ctx)

	for _, template := range templates {
		obj, err := targetFor(template, set, targets)
		if err != nil {
			return err
		}

		if obj.DeleteValue(template.Name) {
			logger.V(1).Info("removed template", "template", template.Name, "target", template.Target)
		}
		obj.RemoveAnnotation(labels.AnnotationWatchedBy)
	}
	return nil
}

func targetFor(template shoebillv1alpha1.Template, set *TargetSet, targets []shoebillv1alpha1.TargetWithName) (store.Object, error) {
	for _, target := range targets {
		if target.Name != template.Target {
			continue
		}
		obj, ok := set.Lookup(target.Target.Kind, target.Name)
		if !ok {
			return nil, &ConfigurationError{
				Field:  fmt.Sprintf("spec.templates[%s].target", template.Name),
				Value:  template.Target,
				Reason: "target not resolved",
			}
		}
		return obj, nil
	}
	return nil, &ConfigurationError{
		Field:  fmt.Sprintf("spec.templates[%s].target", template.Name),
		Value:  template.Target,
		Reason: "target not found",
	}
}
