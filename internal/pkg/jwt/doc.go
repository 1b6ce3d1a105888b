// Package jwt issues, verifies and introspects HMAC-signed JSON Web Tokens.
//
// It includes:
//   - Symmetric, which stamps iat/exp on an arbitrary claims set and signs it
//     with HS256 (default), HS384 or HS512.
//   - Verification that checks structure, signature and expiry in that order.
//   - Introspector, a signature-blind payload decoder used for display only.
//   - Context helpers for storing and retrieving verified claims.
//
// Introspection results must never be used for authorization.
package jwt
