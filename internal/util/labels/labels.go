// Package labels holds the well-known metadata keys shoebill writes to
// Kubernetes objects, and a builder for the labels of its own install
// manifests.
//
// Keys use the badhouseplants.net domain prefix for namespacing.
package labels

// Metadata written to resources a ConfigSet touches.
const (
	// AnnotationWatchedBy marks a target resource that received at least one
	// rendered key. The value is the name of the ConfigSet that last wrote it.
	AnnotationWatchedBy = "badhouseplants.net/watched-by-shu"

	// FinalizerCleanup blocks deletion of a ConfigSet until its rendered keys
	// were removed from every target.
	FinalizerCleanup = "badhouseplants.net/shu-cleanup"
)

// Recommended label keys for the controller's own objects.
const (
	KeyName      = "app.kubernetes.io/name"
	KeyComponent = "app.kubernetes.io/component"
	KeyManagedBy = "app.kubernetes.io/managed-by"
	KeyVersion   = "app.kubernetes.io/version"

	// KeyContainer selects the controller pods
	KeyContainer = "container"
)

// Values for the recommended labels
const (
	AppName             = "shoebill"
	ComponentController = "controller"
	ManagedByShoebill   = "shoebill-manifests"
)

// LabelBuilder provides a fluent interface for building object labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the app name pre-set.
func NewLabelBuilder() *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyName:      AppName,
			KeyManagedBy: ManagedByShoebill,
		},
	}
}

// WithComponent adds a component label (e.g., "controller").
func (lb *LabelBuilder) WithComponent(component string) *LabelBuilder {
	lb.labels[KeyComponent] = component
	return lb
}

// WithVersionIfSet adds a version label only if version is non-empty.
func (lb *LabelBuilder) WithVersionIfSet(version string) *LabelBuilder {
	if version != "" {
		lb.labels[KeyVersion] = version
	}
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// ControllerSelector returns the labels the controller Deployment selects its pods by.
func ControllerSelector() map[string]string {
	return map[string]string{KeyContainer: "shoebill-controller"}
}
