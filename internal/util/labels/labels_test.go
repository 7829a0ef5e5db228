package labels

import "testing"

func TestNewLabelBuilder(t *testing.T) {
	t.Parallel()

	labels := NewLabelBuilder().Build()

	if labels[KeyName] != AppName {
		t.Errorf("expected %s=%q, got %q", KeyName, AppName, labels[KeyName])
	}
	if labels[KeyManagedBy] != ManagedByShoebill {
		t.Errorf("expected %s=%q, got %q", KeyManagedBy, ManagedByShoebill, labels[KeyManagedBy])
	}
	if _, ok := labels[KeyComponent]; ok {
		t.Errorf("component label should not be set by default")
	}
}

func TestWithComponent(t *testing.T) {
	t.Parallel()

	labels := NewLabelBuilder().WithComponent(ComponentController).Build()
	if labels[KeyComponent] != ComponentController {
		t.Errorf("expected %s=%q, got %q", KeyComponent, ComponentController, labels[KeyComponent])
	}
}

func TestWithVersionIfSet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		version string
		wantSet bool
	}{
		{"with version", "v0.1.0", true},
		{"empty version", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			labels := NewLabelBuilder().WithVersionIfSet(tt.version).Build()
			v, ok := labels[KeyVersion]
			if ok != tt.wantSet {
				t.Fatalf("expected version label set=%v, got %v", tt.wantSet, ok)
			}
			if ok && v != tt.version {
				t.Errorf("expected %s=%q, got %q", KeyVersion, tt.version, v)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	labels := NewLabelBuilder().
		Merge(ControllerSelector()).
		Merge(map[string]string{KeyName: "override"}).
		Build()

	if labels[KeyContainer] != "shoebill-controller" {
		t.Errorf("expected selector label to be merged, got %q", labels[KeyContainer])
	}
	if labels[KeyName] != "override" {
		t.Errorf("expected merged value to win, got %q", labels[KeyName])
	}
}

func TestBuildReturnsCopy(t *testing.T) {
	t.Parallel()

	lb := NewLabelBuilder()
	first := lb.Build()
	first[KeyName] = "mutated"

	second := lb.Build()
	if second[KeyName] != AppName {
		t.Errorf("Build must return a copy, got %q", second[KeyName])
	}
}

func TestWellKnownKeys(t *testing.T) {
	t.Parallel()

	if AnnotationWatchedBy != "badhouseplants.net/watched-by-shu" {
		t.Errorf("unexpected annotation key %q", AnnotationWatchedBy)
	}
	if FinalizerCleanup != "badhouseplants.net/shu-cleanup" {
		t.Errorf("unexpected finalizer %q", FinalizerCleanup)
	}
}
