// Package engine implements the sequential workflow orchestrator
//
// An Engine reads a workflow definition from its configured bucket, resolves
// each declared step in order, threads a single payload through the steps,
// and packages the final value or the first failure into an api.Envelope
package engine
