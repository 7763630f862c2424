// Package auth holds the credential store, the session authenticator and the
// access policy gate.
//
// Sessions are server-side: a registry maps a random session id to a user id,
// and the browser carries an HS256 token naming that session. Logging out
// removes the registry entry, so a copied token stops working at once.
package auth
