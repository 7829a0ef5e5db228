// Package v1alpha1 contains API Schema definitions for the shoebill.badhouseplants.net v1alpha1 API group
// +kubebuilder:object:generate=true
// +groupName=shoebill.badhouseplants.net
package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Kind is the kind of a key/value resource a ConfigSet reads from or writes to.
// +kubebuilder:validation:Enum=Secret;ConfigMap
type Kind string

const (
	// KindSecret is a core/v1 Secret; values are opaque bytes
	KindSecret Kind = "Secret"
	// KindConfigMap is a core/v1 ConfigMap; values are text
	KindConfigMap Kind = "ConfigMap"
)

// ConfigSetSpec defines the desired state of a ConfigSet.
//
// During reconciliation the controller reads the values declared in Inputs,
// renders every Template against them and writes the results into the
// Secrets and ConfigMaps declared in Targets.
type ConfigSetSpec struct {
	// Targets are the resources rendered templates are written to
	Targets []TargetWithName `json:"targets"`

	// Inputs are the values templates can reference
	Inputs []InputWithName `json:"inputs"`

	// Templates produce one key each in a target
	Templates []Template `json:"templates"`
}

// TargetWithName binds a logical target name to a backing resource.
type TargetWithName struct {
	// Name is the logical name templates refer to
	Name string `json:"name"`

	// Target is the backing resource
	Target Target `json:"target"`
}

// Target identifies a Secret or ConfigMap in the ConfigSet's namespace.
type Target struct {
	// Kind of the backing resource
	Kind Kind `json:"kind"`

	// Name of the backing resource
	Name string `json:"name"`
}

// InputWithName declares a single value to resolve.
type InputWithName struct {
	// Name of the input
	Name string `json:"name"`

	// From is where the value is read from
	From Input `json:"from"`
}

// Input points at one key of a Secret or ConfigMap in the ConfigSet's namespace.
type Input struct {
	// Kind of the source resource
	Kind Kind `json:"kind"`

	// Name of the source resource
	Name string `json:"name"`

	// Key inside the source resource's data
	Key string `json:"key"`
}

// Template is rendered into Target under the key Name.
type Template struct {
	// Name becomes the key written into the target's data
	Name string `json:"name"`

	// Template is the body, variables are referenced as {{name}}
	Template string `json:"template"`

	// Target must match the name of one of spec.targets
	Target string `json:"target"`
}

// ConfigSetStatus defines the observed state of ConfigSet.
type ConfigSetStatus struct {
	// Ready is true once the last apply pass succeeded
	Ready bool `json:"ready"`

	// Conditions represent the latest available observations
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// ObservedGeneration is the last generation the controller applied
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=confset
// +kubebuilder:printcolumn:name="Ready",type=boolean,JSONPath=`.status.ready`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// ConfigSet is the Schema for the configsets API.
type ConfigSet struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ConfigSetSpec   `json:"spec,omitempty"`
	Status ConfigSetStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ConfigSetList contains a list of ConfigSet.
type ConfigSetList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ConfigSet `json:"items"`
}

// Condition types for ConfigSet
const (
	// ConditionReady indicates every template was rendered and written
	ConditionReady = "Ready"
)
