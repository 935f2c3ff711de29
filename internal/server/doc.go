// Package server provides the HTTP API for triggering workflow runs
//
// This package implements the REST endpoints for checking service health,
// inspecting the configured workflow definition, and running it
package server
