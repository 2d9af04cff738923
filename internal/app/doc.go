// Package app assembles the entity, policy and validator registries used by
// the adminspec command.
package app
