// Package app holds the storefront controller.
//
// Store is the single owner of the bearer token, the decoded session and the
// cached item lists. It moves between two states: Unauthenticated and
// Authenticated. Every mutation goes to the server and is followed by a full
// reload of the item list; the cache is never patched locally.
package app
