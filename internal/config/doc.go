// Package config holds the settings of the shoebill binary: the controller
// process (bind addresses, leader election, requeue delay, watch scope) and
// the generated installation manifests.
package config
