// Package events declares the events published while schemas are built.
package events

import "time"

// SchemaBuildStart is emitted before a schema build begins.
type SchemaBuildStart struct {
	BuildID   string
	Resources int
}

// SchemaBuildFinish is emitted after a schema build, successful or not.
type SchemaBuildFinish struct {
	BuildID   string
	Resources int
	Types     int
	Err       error
	Duration  time.Duration
}

// TypeRegistered is emitted when a named type enters the registry of a
// build.
type TypeRegistered struct {
	BuildID string
	Name    string
	Kind    string
}
