// Package session owns the authentication state of the client.
//
// A Manager holds the current Session (token, user profile, loading flag),
// drives login and signup through their stages, and performs forced logout
// when the API client reports that the backend rejected the token. Every
// change is published to subscribers; forced logouts are additionally
// signalled on a dedicated channel so navigation can react to them.
//
// A Manager is safe for concurrent use. No lock is held while a backend call
// is in flight.
package session
