// Package clock provides a tiny time abstraction.
//
// Token issuance and introspection read the wall clock on every call. Code
// depends on the Clocker interface so tests can pin the instant with Fixed and
// assert exact iat, exp and expiresIn values.
package clock
