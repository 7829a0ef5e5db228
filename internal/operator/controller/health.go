package controller

import (
	"fmt"
	"net/http"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/healthz"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

// ConfigSetAPICheck reports ready once the ConfigSet API is served and
// readable with the controller's credentials.
func ConfigSetAPICheck(reader client.Reader) healthz.Checker {
	return func(req *http.Request) error {
		list := &shoebillv1alpha1.ConfigSetList{}
		if err := reader.List(req.Context(), list, client.Limit(1)); err != nil {
			return fmt.Errorf("failed to list ConfigSets: %w", err)
		}
		return nil
	}
}
