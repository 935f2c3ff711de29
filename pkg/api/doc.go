// Package api defines the core data types shared by the pipeline runner
//
// This package contains the workflow definition model, the step capability
// contract, the result envelope, the error taxonomy, and the HTTP messages
// exchanged with the API server
package api
