// Package manifests generates the objects needed to install the shoebill
// controller: the ConfigSet CRD, RBAC for the controller ServiceAccount,
// and the controller Deployment.
package manifests

import (
	"fmt"
	"io"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	"github.com/badhouseplants/shoebill/internal/config"
	"github.com/badhouseplants/shoebill/internal/util/labels"
)

// Objects returns every install object in apply order.
func Objects(cfg config.Manifests) []client.Object {
	objLabels := labels.NewLabelBuilder().
		WithComponent(labels.ComponentController).
		WithVersionIfSet(versionLabel(cfg.Tag)).
		Build()

	return []client.Object{
		ConfigSetCRD(),
		ClusterRole(objLabels),
		ServiceAccount(cfg.Namespace, objLabels),
		ClusterRoleBinding(cfg.Namespace, objLabels),
		Deployment(cfg, objLabels),
	}
}

// Write prints the install objects as a multi-document YAML stream.
func Write(w io.Writer, cfg config.Manifests) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid manifest options: %w", err)
	}

	for _, obj := range Objects(cfg) {
		data, err := yaml.Marshal(obj)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s: %w", obj.GetObjectKind().GroupVersionKind().Kind, obj.GetName(), err)
		}
		if _, err := fmt.Fprintf(w, "---\n%s", data); err != nil {
			return err
		}
	}
	return nil
}

// versionLabel returns tag as a version label value, or "" for the
// floating latest tag.
func versionLabel(tag string) string {
	if tag == config.DefaultTag {
		return ""
	}
	return tag
}
