// Package services contains the domain facades of the moodjournal client.
//
// Each facade is a thin typed wrapper over one group of backend endpoints
// (auth, entries, agent, analytics). Facades hold no state; authentication
// and forced logout are handled by the API client they are built on. Views
// combines several facades to load the data a screen needs in one call.
package services
