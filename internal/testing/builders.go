package testing

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

// ConfigSetBuilder provides a fluent interface for constructing test ConfigSets.
// Each method returns a new builder (immutable) for chaining.
type ConfigSetBuilder struct {
	cs shoebillv1alpha1.ConfigSet
}

// NewConfigSetBuilder creates a new ConfigSetBuilder for an empty ConfigSet.
func NewConfigSetBuilder(name, namespace string) *ConfigSetBuilder {
	return &ConfigSetBuilder{
		cs: shoebillv1alpha1.ConfigSet{
			TypeMeta: metav1.TypeMeta{
				APIVersion: shoebillv1alpha1.GroupVersion.String(),
				Kind:       "ConfigSet",
			},
			ObjectMeta: metav1.ObjectMeta{
				Name:      name,
				Namespace: namespace,
				UID:       types.UID(name + "-uid"),
			},
		},
	}
}

// WithSecretInput adds an input read from a Secret key.
func (b *ConfigSetBuilder) WithSecretInput(name, secret, key string) *ConfigSetBuilder {
	return b.withInput(name, shoebillv1alpha1.KindSecret, secret, key)
}

// WithConfigMapInput adds an input read from a ConfigMap key.
func (b *ConfigSetBuilder) WithConfigMapInput(name, configMap, key string) *ConfigSetBuilder {
	return b.withInput(name, shoebillv1alpha1.KindConfigMap, configMap, key)
}

func (b *ConfigSetBuilder) withInput(name string, kind shoebillv1alpha1.Kind, resource, key string) *ConfigSetBuilder {
	newBuilder := b.clone()
	newBuilder.cs.Spec.Inputs = append(newBuilder.cs.Spec.Inputs, shoebillv1alpha1.InputWithName{
		Name: name,
		From: shoebillv1alpha1.Input{Kind: kind, Name: resource, Key: key},
	})
	return newBuilder
}

// WithTarget adds a target bound to a backing resource.
func (b *ConfigSetBuilder) WithTarget(name string, kind shoebillv1alpha1.Kind, resource string) *ConfigSetBuilder {
	newBuilder := b.clone()
	newBuilder.cs.Spec.Targets = append(newBuilder.cs.Spec.Targets, shoebillv1alpha1.TargetWithName{
		Name:   name,
		Target: shoebillv1alpha1.Target{Kind: kind, Name: resource},
	})
	return newBuilder
}

// WithTemplate adds a template written to the named target.
func (b *ConfigSetBuilder) WithTemplate(name, body, target string) *ConfigSetBuilder {
	newBuilder := b.clone()
	newBuilder.cs.Spec.Templates = append(newBuilder.cs.Spec.Templates, shoebillv1alpha1.Template{
		Name:     name,
		Template: body,
		Target:   target,
	})
	return newBuilder
}

// WithFinalizers sets the finalizer list.
func (b *ConfigSetBuilder) WithFinalizers(finalizers ...string) *ConfigSetBuilder {
	newBuilder := b.clone()
	newBuilder.cs.Finalizers = append([]string(nil), finalizers...)
	return newBuilder
}

// Deleting marks the ConfigSet as being deleted.
func (b *ConfigSetBuilder) Deleting() *ConfigSetBuilder {
	newBuilder := b.clone()
	now := metav1.Now()
	newBuilder.cs.DeletionTimestamp = &now
	return newBuilder
}

// Build returns the constructed ConfigSet.
func (b *ConfigSetBuilder) Build() *shoebillv1alpha1.ConfigSet {
	return b.cs.DeepCopy()
}

// clone creates a deep copy of the builder for immutability.
func (b *ConfigSetBuilder) clone() *ConfigSetBuilder {
	return &ConfigSetBuilder{cs: *b.cs.DeepCopy()}
}

// LiteralConfigSet returns the app-config ConfigSet used across tests: one
// Secret input, one Secret target that does not exist yet, one template.
func LiteralConfigSet() *shoebillv1alpha1.ConfigSet {
	return NewConfigSetBuilder("app-config", "prod").
		WithSecretInput("pw", "db-secret", "password").
		WithTarget("creds", shoebillv1alpha1.KindSecret, "db-creds").
		WithTemplate("DB_PASSWORD", "{{pw}}", "creds").
		Build()
}
