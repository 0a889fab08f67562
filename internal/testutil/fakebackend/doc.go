// Package fakebackend is an in-process imitation of the moodjournal REST
// backend for end-to-end tests of the client.
//
// It keeps users, entries and follow-ups in memory, hashes passwords with
// bcrypt and issues HS256 bearer tokens whose sub claim is the user id.
// Timestamps are emitted without a zone offset, as the real backend does.
// Tests can inject failures per route, revoke every issued token, and
// inspect the requests that were received.
package fakebackend
