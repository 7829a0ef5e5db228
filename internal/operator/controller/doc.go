// Package controller implements the Kubernetes controller for ConfigSet
// custom resources.
//
// Each ConfigSet moves through a small finalizer state machine:
// a new ConfigSet gets the cleanup finalizer, a live one is applied by
// resolving its inputs and targets, rendering its templates and writing
// the targets back, and a deleted one has its rendered keys removed from
// the targets before the finalizer is released.
//
// Failed passes are retried after a fixed delay. Successful passes wait for
// the next change to the ConfigSet.
package controller
