// Package file provides file-based implementations of driven port interfaces.
// These adapters read and persist data on the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based settings storage (config.toml)
//   - Catalog: the sites catalogue (sites.toml or sites.yaml) that declares
//     every provider, its capabilities and its backend settings
//
// A catalogue entry:
//
//	[[site]]
//	id = "nyaa"
//	kind = "torznab"
//	capabilities = ["search", "recent", "category"]
//	categories = ["anime", "music"]
//	recent_has_category = true
//	max_limit = 75
//	base_url = "https://indexer.example/api"
//	rate = 2
//	timeout = "10s"
//
//	[site.oauth]
//	token_url = "https://auth.example/token"
//	client_id = "trawl"
//	client_secret = "secret"
package file
