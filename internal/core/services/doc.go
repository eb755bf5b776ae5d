// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The gateway core lives here: the capability Registry, the request
// normaliser, the single-provider Dispatcher and the scatter-gather
// Aggregator. Observers shipped with the core (logging, item recording)
// live here too; counters live with the memory adapters.
package services
