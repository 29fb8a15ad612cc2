// Package lazy binds call arguments into a resolution scope and hands
// out placeholders that stand in for the bound values.
//
// A scope is entered with the call's arguments and travels on the
// context. Query builders run against placeholders instead of values, so
// the queries they produce describe structure; the placeholder resolves
// to the real value only when asked, and only while its own scope is the
// active one. After Exit the scope's placeholders are permanently
// unresolvable.
//
// Scopes nest: an inner Enter shadows the outer scope on the derived
// context, and the outer context keeps resolving the outer bindings.
package lazy
