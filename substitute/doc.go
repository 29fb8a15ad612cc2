// Package substitute memoizes the structure of conditionally built queries.
//
// A Substituter wraps one named builder function. The first call for a
// given argument shape builds the query twice, once against lazy
// placeholders and once against the concrete values, verifies that both
// runs produced the same structure, and caches the resulting template.
// Later calls with the same shape skip the builder entirely and bind the
// cached template to the new values.
//
// Callers either manage the resolution scope themselves with lazy.Enter
// and Do, or let Call handle the scope for a single statement:
//
//	sub, err := substitute.New("users.by_email", buildByEmail)
//	if err != nil {
//		return err
//	}
//	stmt, err := sub.Call(ctx, map[string]any{"email": email})
//
// Memoization is keyed by argument shape, never by value, so builders
// must branch only on how arguments look (present, nil, true, empty),
// not on what they contain. The validation run catches builders that
// break this rule and reports a *template.DivergenceError before the
// faulty template can be cached.
package substitute
