package store

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

type configMapObject struct {
	configMap *corev1.ConfigMap
}

// NewConfigMapObject wraps an existing ConfigMap.
func NewConfigMapObject(cm *corev1.ConfigMap) Object {
	return &configMapObject{configMap: cm}
}

func (o *configMapObject) Kind() shoebillv1alpha1.Kind { return shoebillv1alpha1.KindConfigMap }

func (o *configMapObject) Raw() client.Object { return o.configMap }

func (o *configMapObject) ReadValue(key string) (string, bool, error) {
	v, ok := o.configMap.Data[key]
	return v, ok, nil
}

func (o *configMapObject) WriteValue(key, value string) {
	if o.configMap.Data == nil {
		o.configMap.Data = make(map[string]string)
	}
	o.configMap.Data[key] = value
}

func (o *configMapObject) DeleteValue(key string) bool {
	if _, ok := o.configMap.Data[key]; !ok {
		return false
	}
	delete(o.configMap.Data, key)
	return true
}

func (o *configMapObject) Keys() []string { return sortedKeys(o.configMap.Data) }

func (o *configMapObject) Annotation(key string) (string, bool) { return annotation(o.configMap, key) }

func (o *configMapObject) SetAnnotation(key, value string) { setAnnotation(o.configMap, key, value) }

func (o *configMapObject) RemoveAnnotation(key string) bool {
	return removeAnnotation(o.configMap, key)
}

type configMapAccessor struct {
	client client.Client
}

func (a *configMapAccessor) Kind() shoebillv1alpha1.Kind { return shoebillv1alpha1.KindConfigMap }

func (a *configMapAccessor) New(namespace, name string) Object {
	return &configMapObject{configMap: &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Data: map[string]string{},
	}}
}

func (a *configMapAccessor) Get(ctx context.Context, namespace, name string) (Object, error) {
	cm := &corev1.ConfigMap{}
	if err := a.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, cm); err != nil {
		return nil, err
	}
	return &configMapObject{configMap: cm}, nil
}

func (a *configMapAccessor) Create(ctx context.Context, obj Object) (Object, error) {
	cm, err := asConfigMap(obj)
	if err != nil {
		return nil, err
	}
	if err := a.client.Create(ctx, cm); err != nil {
		return nil, err
	}
	return obj, nil
}

func (a *configMapAccessor) Replace(ctx context.Context, obj Object) (Object, error) {
	cm, err := asConfigMap(obj)
	if err != nil {
		return nil, err
	}
	if err := a.client.Update(ctx, cm); err != nil {
		return nil, err
	}
	return obj, nil
}

func asConfigMap(obj Object) (*corev1.ConfigMap, error) {
	cm, ok := obj.Raw().(*corev1.ConfigMap)
	if !ok {
		return nil, fmt.Errorf("expected a ConfigMap, got %T", obj.Raw())
	}
	return cm, nil
}
