package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Query and brand listing are read-only launcher surfaces, no auth
	return []string{"/api/stores", "/api/brands", "/graphql"}
}
