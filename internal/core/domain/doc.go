// Package domain defines the core business entities for trawl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ProviderDescriptor: What a provider can do and its limits
//   - Capability: The operations a provider supports
//   - Query: A request normalised against a descriptor
//   - Outcome: The classified result of one provider invocation
//   - AggregateResult: The merged answer of a multi-provider request
//   - Item: An opaque record returned by a provider
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
