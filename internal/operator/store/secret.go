package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

type secretObject struct {
	secret *corev1.Secret
}

// NewSecretObject wraps an existing Secret.
func NewSecretObject(s *corev1.Secret) Object {
	return &secretObject{secret: s}
}

func (o *secretObject) Kind() shoebillv1alpha1.Kind { return shoebillv1alpha1.KindSecret }

func (o *secretObject) Raw() client.Object { return o.secret }

func (o *secretObject) ReadValue(key string) (string, bool, error) {
	raw, ok := o.secret.Data[key]
	if !ok {
		return "", false, nil
	}
	if !utf8.Valid(raw) {
		return "", true, ErrInvalidEncoding
	}
	return string(raw), true, nil
}

func (o *secretObject) WriteValue(key, value string) {
	if o.secret.Data == nil {
		o.secret.Data = make(map[string][]byte)
	}
	o.secret.Data[key] = []byte(value)
}

func (o *secretObject) DeleteValue(key string) bool {
	if _, ok := o.secret.Data[key]; !ok {
		return false
	}
	delete(o.secret.Data, key)
	return true
}

func (o *secretObject) Keys() []string { return sortedKeys(o.secret.Data) }

func (o *secretObject) Annotation(key string) (string, bool) { return annotation(o.secret, key) }

func (o *secretObject) SetAnnotation(key, value string) { setAnnotation(o.secret, key, value) }

func (o *secretObject) RemoveAnnotation(key string) bool { return removeAnnotation(o.secret, key) }

type secretAccessor struct {
	client client.Client
}

func (a *secretAccessor) Kind() shoebillv1alpha1.Kind { return shoebillv1alpha1.KindSecret }

func (a *secretAccessor) New(namespace, name string) Object {
	return &secretObject{secret: &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Data: map[string][]byte{},
	}}
}

func (a *secretAccessor) Get(ctx context.Context, namespace, name string) (Object, error) {
	secret := &corev1.Secret{}
	if err := a.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, secret); err != nil {
		return nil, err
	}
	return &secretObject{secret: secret}, nil
}

func (a *secretAccessor) Create(ctx context.Context, obj Object) (Object, error) {
	secret, err := asSecret(obj)
	if err != nil {
		return nil, err
	}
	if err := a.client.Create(ctx, secret); err != nil {
		return nil, err
	}
	return obj, nil
}

func (a *secretAccessor) Replace(ctx context.Context, obj Object) (Object, error) {
	secret, err := asSecret(obj)
	if err != nil {
		return nil, err
	}
	if err := a.client.Update(ctx, secret); err != nil {
		return nil, err
	}
	return obj, nil
}

func asSecret(obj Object) (*corev1.Secret, error) {
	secret, ok := obj.Raw().(*corev1.Secret)
	if !ok {
		return nil, fmt.Errorf("expected a Secret, got %T", obj.Raw())
	}
	return secret, nil
}
