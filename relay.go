// Package relay runs linear pipelines of pluggable nodes, threading a single
// payload from each node into the next
package relay

// Name is the service name reported in logs and health responses
const Name = "relay"

// Version is overridden at build time via -ldflags
var Version = "dev"
