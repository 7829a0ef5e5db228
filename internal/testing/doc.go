// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigSetBuilder: Fluent builder for creating test ConfigSets
//   - Secret / ConfigMap: fixtures for input and target resources
//   - NewScheme / NewFakeClient: a scheme and fake client knowing every type the controller touches
//
// Usage:
//
//	cs := testing.NewConfigSetBuilder("app-config", "prod").
//	    WithSecretInput("pw", "db-secret", "password").
//	    WithTarget("creds", v1alpha1.KindSecret, "db-creds").
//	    WithTemplate("DB_PASSWORD", "{{pw}}", "creds").
//	    Build()
package testing
