// Package app provides the interactive mymemory command-line client.
//
// It wires configuration, the local SQLite preferences store and the session
// store, then runs a REPL whose commands only go through session.Store:
// login, logout, whoami, name, profile, tutorial. Two maintenance commands,
// keys and reset, operate on the raw preferences.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package app
