package manifests

import (
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

const (
	crdPlural   = "configsets"
	crdSingular = "configset"
	crdKind     = "ConfigSet"
	crdListKind = "ConfigSetList"
	crdShort    = "confset"
)

// ConfigSetCRD returns the CustomResourceDefinition of the ConfigSet API.
func ConfigSetCRD() *apiextensionsv1.CustomResourceDefinition {
	group := shoebillv1alpha1.GroupVersion.Group

	return &apiextensionsv1.CustomResourceDefinition{
		TypeMeta: metav1.TypeMeta{
			APIVersion: apiextensionsv1.SchemeGroupVersion.String(),
			Kind:       "CustomResourceDefinition",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: crdPlural + "." + group,
		},
		Spec: apiextensionsv1.CustomResourceDefinitionSpec{
			Group: group,
			Names: apiextensionsv1.CustomResourceDefinitionNames{
				Plural:     crdPlural,
				Singular:   crdSingular,
				Kind:       crdKind,
				ListKind:   crdListKind,
				ShortNames: []string{crdShort},
			},
			Scope: apiextensionsv1.NamespaceScoped,
			Versions: []apiextensionsv1.CustomResourceDefinitionVersion{{
				Name:    shoebillv1alpha1.GroupVersion.Version,
				Served:  true,
				Storage: true,
				Schema: &apiextensionsv1.CustomResourceValidation{
					OpenAPIV3Schema: configSetSchema(),
				},
				Subresources: &apiextensionsv1.CustomResourceSubresources{
					Status: &apiextensionsv1.CustomResourceSubresourceStatus{},
				},
				AdditionalPrinterColumns: []apiextensionsv1.CustomResourceColumnDefinition{
					{Name: "Ready", Type: "boolean", JSONPath: ".status.ready"},
					{Name: "Age", Type: "date", JSONPath: ".metadata.creationTimestamp"},
				},
			}},
		},
	}
}

func configSetSchema() *apiextensionsv1.JSONSchemaProps {
	return &apiextensionsv1.JSONSchemaProps{
		Type:        "object",
		Description: "ConfigSet renders templates from Secret and ConfigMap inputs into Secret and ConfigMap targets.",
		Required:    []string{"spec"},
		Properties: map[string]apiextensionsv1.JSONSchemaProps{
			"apiVersion": {Type: "string"},
			"kind":       {Type: "string"},
			"metadata":   {Type: "object"},
			"spec":       specSchema(),
			"status":     statusSchema(),
		},
	}
}

func specSchema() apiextensionsv1.JSONSchemaProps {
	return apiextensionsv1.JSONSchemaProps{
		Type: "object",
		Properties: map[string]apiextensionsv1.JSONSchemaProps{
			"targets": arrayOf(apiextensionsv1.JSONSchemaProps{
				Type:     "object",
				Required: []string{"name", "target"},
				Properties: map[string]apiextensionsv1.JSONSchemaProps{
					"name": nonEmptyString(),
					"target": {
						Type:     "object",
						Required: []string{"kind", "name"},
						Properties: map[string]apiextensionsv1.JSONSchemaProps{
							"kind": kindSchema(),
							"name": nonEmptyString(),
						},
					},
				},
			}),
			"inputs": arrayOf(apiextensionsv1.JSONSchemaProps{
				Type:     "object",
				Required: []string{"name", "from"},
				Properties: map[string]apiextensionsv1.JSONSchemaProps{
					"name": nonEmptyString(),
					"from": {
						Type:     "object",
						Required: []string{"kind", "name", "key"},
						Properties: map[string]apiextensionsv1.JSONSchemaProps{
							"kind": kindSchema(),
							"name": nonEmptyString(),
							"key":  nonEmptyString(),
						},
					},
				},
			}),
			"templates": arrayOf(apiextensionsv1.JSONSchemaProps{
				Type:     "object",
				Required: []string{"name", "template", "target"},
				Properties: map[string]apiextensionsv1.JSONSchemaProps{
					"name":     nonEmptyString(),
					"template": {Type: "string"},
					"target":   nonEmptyString(),
				},
			}),
		},
	}
}

func statusSchema() apiextensionsv1.JSONSchemaProps {
	return apiextensionsv1.JSONSchemaProps{
		Type: "object",
		Properties: map[string]apiextensionsv1.JSONSchemaProps{
			"ready":              {Type: "boolean"},
			"observedGeneration": {Type: "integer", Format: "int64"},
			"conditions": {
				Type:         "array",
				XListType:    ptr.To("map"),
				XListMapKeys: []string{"type"},
				Items: &apiextensionsv1.JSONSchemaPropsOrArray{Schema: &apiextensionsv1.JSONSchemaProps{
					Type:     "object",
					Required: []string{"type", "status", "lastTransitionTime", "reason", "message"},
					Properties: map[string]apiextensionsv1.JSONSchemaProps{
						"type":               {Type: "string"},
						"status":             {Type: "string", Enum: enumOf("True", "False", "Unknown")},
						"observedGeneration": {Type: "integer", Format: "int64"},
						"lastTransitionTime": {Type: "string", Format: "date-time"},
						"reason":             {Type: "string"},
						"message":            {Type: "string"},
					},
				}},
			},
		},
	}
}

func kindSchema() apiextensionsv1.JSONSchemaProps {
	return apiextensionsv1.JSONSchemaProps{
		Type: "string",
		Enum: enumOf(string(shoebillv1alpha1.KindSecret), string(shoebillv1alpha1.KindConfigMap)),
	}
}

func nonEmptyString() apiextensionsv1.JSONSchemaProps {
	return apiextensionsv1.JSONSchemaProps{Type: "string", MinLength: ptr.To[int64](1)}
}

func arrayOf(item apiextensionsv1.JSONSchemaProps) apiextensionsv1.JSONSchemaProps {
	return apiextensionsv1.JSONSchemaProps{
		Type:  "array",
		Items: &apiextensionsv1.JSONSchemaPropsOrArray{Schema: &item},
	}
}

func enumOf(values ...string) []apiextensionsv1.JSON {
	enum := make([]apiextensionsv1.JSON, 0, len(values))
	for _, v := range values {
		enum = append(enum, apiextensionsv1.JSON{Raw: []byte(`"` + v + `"`)})
	}
	return enum
}
