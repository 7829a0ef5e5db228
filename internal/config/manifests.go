package config

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation"
)

// Defaults for generated installation manifests.
const (
	DefaultManifestNamespace = "default"
	DefaultImage             = "shoebill"
	DefaultTag               = "latest"
)

// Manifests holds the settings of the manifests command.
type Manifests struct {
	Namespace string
	Image     string
	Tag       string
}

// DefaultManifests returns the manifest settings used when no flag is given.
func DefaultManifests() Manifests {
	return Manifests{
		Namespace: DefaultManifestNamespace,
		Image:     DefaultImage,
		Tag:       DefaultTag,
	}
}

// ImageRef returns the full image reference of the controller container.
func (m Manifests) ImageRef() string {
	return m.Image + ":" + m.Tag
}

// Validate checks that the manifests can be rendered.
func (m Manifests) Validate() error {
	if err := validateNamespace(m.Namespace); err != nil {
		return fmt.Errorf("namespace: %w", err)
	}
	if m.Image == "" {
		return fmt.Errorf("image is required")
	}
	if m.Tag == "" {
		return fmt.Errorf("tag is required")
	}
	return nil
}

func validateNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("must not be empty")
	}
	if errs := validation.IsDNS1123Label(namespace); len(errs) > 0 {
		return fmt.Errorf("invalid name %q: %s", namespace, errs[0])
	}
	return nil
}
