package testing

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

// NewScheme returns a scheme with the core types and the ConfigSet API registered.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(shoebillv1alpha1.AddToScheme(scheme))
	return scheme
}

// NewFakeClientBuilder returns a fake client builder seeded with objs. Every
// ConfigSet among objs gets its status subresource enabled.
func NewFakeClientBuilder(scheme *runtime.Scheme, objs ...client.Object) *fake.ClientBuilder {
	builder := fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(objs...).
		WithStatusSubresource(&shoebillv1alpha1.ConfigSet{})
	return builder
}

// Secret returns a Secret fixture holding data as bytes.
func Secret(namespace, name string, data map[string]string) *corev1.Secret {
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Data:       make(map[string][]byte, len(data)),
	}
	for k, v := range data {
		secret.Data[k] = []byte(v)
	}
	return secret
}

// ConfigMap returns a ConfigMap fixture.
func ConfigMap(namespace, name string, data map[string]string) *corev1.ConfigMap {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Data:       make(map[string]string, len(data)),
	}
	for k, v := range data {
		cm.Data[k] = v
	}
	return cm
}

// LiteralSecret is the db-secret input of LiteralConfigSet.
func LiteralSecret() *corev1.Secret {
	return Secret("prod", "db-secret", map[string]string{"password": "s3cr3t"})
}
