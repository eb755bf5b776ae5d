// Package provider builds driven.Provider implementations from catalogue specs.
//
// Kinds:
//   - torznab: Torznab/Newznab XML feeds (Jackett, Prowlarr and compatible indexers)
//   - jsonapi: JSON HTTP APIs described by per-operation URL templates
//   - file: a local JSON dataset, reloaded when the file changes
package provider
