// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the two run modes (a one-shot inspection
// and the long-running dependency server), decoupled from any specific
// entrypoint like a CLI.
package app
