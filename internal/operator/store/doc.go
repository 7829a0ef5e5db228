// Package store wraps the controller-runtime client with a uniform key/value
// view over the two resource kinds a ConfigSet reads and writes.
//
// An Accessor exposes get/create/replace for one kind; an Object exposes
// read/write/delete of single keys and of annotations regardless of whether
// the backing resource stores bytes (Secret) or text (ConfigMap). Callers
// dispatch on kind once, through For, instead of branching at every step.
package store
