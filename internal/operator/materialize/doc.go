// Package materialize turns a ConfigSet spec into rendered values inside
// Secrets and ConfigMaps.
//
// The pipeline has three stages, each a plain function over the store
// package's uniform key/value view:
//
//	ResolveInputs  -> name/value mapping read from existing resources
//	ResolveTargets -> existing or newly created target resources
//	BuildTemplates -> rendered values written into the targets in memory
//
// RemoveTemplates is the inverse of BuildTemplates used on deletion. None of
// the stages write targets back; the caller owns write-back. All API calls are
// sequential on the caller's goroutine.
package materialize
