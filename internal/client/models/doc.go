// Package models defines the wire types exchanged with the journaling
// backend: users and tokens, journal entries, reflection prompts, and
// analytics.
package models
