// Package history prepares raw event logs for the linearizability search
// engine: repairing histories left open by unconfirmed operations,
// rejecting malformed ones outright, and loading fixtures from YAML.
package history
