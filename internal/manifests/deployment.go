package manifests

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/badhouseplants/shoebill/internal/config"
	"github.com/badhouseplants/shoebill/internal/util/labels"
)

// Container ports of the controller.
const (
	metricsPort = 8080
	probePort   = 8081
)

// Deployment runs a single controller replica with leader election enabled.
func Deployment(cfg config.Manifests, objLabels map[string]string) *appsv1.Deployment {
	selector := labels.ControllerSelector()
	podLabels := labels.NewLabelBuilder().
		WithComponent(labels.ComponentController).
		Merge(selector).
		Build()

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: appsv1.SchemeGroupVersion.String(),
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ControllerName,
			Namespace: cfg.Namespace,
			Labels:    objLabels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To[int32](1),
			Selector: &metav1.LabelSelector{MatchLabels: selector},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: podLabels},
				Spec: corev1.PodSpec{
					ServiceAccountName:           ControllerName,
					AutomountServiceAccountToken: ptr.To(true),
					Containers:                   []corev1.Container{controllerContainer(cfg)},
				},
			},
		},
	}
}

func controllerContainer(cfg config.Manifests) corev1.Container {
	return corev1.Container{
		Name:            ControllerName,
		Image:           cfg.ImageRef(),
		ImagePullPolicy: corev1.PullIfNotPresent,
		Command:         []string{"/shoebill"},
		Args:            []string{"controller"},
		Env: []corev1.EnvVar{
			{Name: "SHOEBILL_LEADER_ELECT", Value: "true"},
		},
		Ports: []corev1.ContainerPort{
			{Name: "metrics", ContainerPort: metricsPort, Protocol: corev1.ProtocolTCP},
			{Name: "probes", ContainerPort: probePort, Protocol: corev1.ProtocolTCP},
		},
		LivenessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{Path: "/healthz", Port: intstr.FromString("probes")},
			},
			InitialDelaySeconds: 15,
			PeriodSeconds:       20,
		},
		ReadinessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{Path: "/readyz", Port: intstr.FromString("probes")},
			},
			InitialDelaySeconds: 5,
			PeriodSeconds:       10,
		},
		SecurityContext: &corev1.SecurityContext{
			AllowPrivilegeEscalation: ptr.To(false),
			ReadOnlyRootFilesystem:   ptr.To(true),
			Capabilities: &corev1.Capabilities{
				Drop: []corev1.Capability{"ALL"},
			},
		},
	}
}
