// Package bapanel provides a local, CLI-based browser for the BlackArch
// tool collection. It harvests package metadata from the local package
// database, enriches it with descriptions scraped from the project
// website, stores everything in SQLite, and provides search, browsing,
// JSON export/import, and wrapper script generation on top of the store.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, pacman/, goquery/).
package bapanel
