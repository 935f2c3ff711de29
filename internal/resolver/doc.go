// Package resolver turns workflow step locators into invocable steps
//
// A locator either names a builtin step registered in a Registry or is a
// path inside the nodes bucket. Unit files are dispatched by extension:
// .lua units run in a sandboxed go-lua state, .go units are interpreted by
// yaegi, .ale units are compiled as the body of a single-argument lambda,
// and .expr units are evaluated by expr-lang with the payload bound to
// input
package resolver
