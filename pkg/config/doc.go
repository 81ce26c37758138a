// Package config provides configuration management for rsa-in-go.
//
// Values are resolved in order: built-in defaults, then the YAML file
// $RSA_CONFIG_PATH/rsa.yml (default /etc/rsa-in-go/rsa.yml), then environment
// variables. Every attribute remembers which of the three it came from.
//
// # Key Configuration Options
//
//   - RSA_KEY_SIZE: Default modulus size in bits
//   - RSA_MAX_ATTEMPTS: Prime pairs tried per key
//   - RSA_MAX_DRAWS, RSA_MAX_CANDIDATES: Sampling loop bounds
//   - RSA_CERTAINTY: Primality confidence in bits
//   - RSA_ACCEPTANCE_POLICY: observed or strict
//   - RSA_LOG_LEVEL: Logging verbosity
//   - RSA_AUDIT_ENABLED, AUDIT_DATABASE_URL: Audit trail
package config
