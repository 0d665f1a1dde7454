// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. Namespaced
// PROPERTY_* variables take precedence over the bare names (PORT,
// MONGODB_URI, JWT_SECRET, ...) that hosting platforms commonly inject.
package config
