// Package retrieval implements the inverted posting-list index over
// ternary vectors (L5) and its exact top-k cosine query.
//
// The index maps each trit position to two posting lists — vectors that
// are +1 there and vectors that are -1 there — so a query only touches
// postings for indices actually present in its own support, rather than
// scanning every indexed vector.
package retrieval
