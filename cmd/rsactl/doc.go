// Command rsactl generates textbook RSA keys and applies them to integers.
//
// # Quick Start
//
//	# Generate a 2048-bit key pair
//	rsactl keygen --size 2048
//
//	# Encrypt and decrypt with the printed components
//	rsactl encrypt --modulus $N 1234
//	rsactl decrypt --modulus $N --private-exponent $D $C
//
//	# Generate, encrypt and decrypt in one go
//	rsactl roundtrip --size 128 1234
//
// Integers are accepted in decimal or with a 0x, 0o or 0b prefix and are
// always printed in decimal.
//
// # Audit Trail
//
// With RSA_AUDIT_ENABLED=true every key generation is logged to stderr as an
// RFC5424 line. When AUDIT_DATABASE_URL is also set the events are stored in
// PostgreSQL; run "rsactl audit migrate" once to create the table.
//
// # Environment Variables
//
//   - RSA_CONFIG_PATH: Directory holding rsa.yml (default: /etc/rsa-in-go)
//   - RSA_KEY_SIZE: Default key size for keygen and roundtrip
//   - RSA_ACCEPTANCE_POLICY: observed or strict
//   - RSA_LOG_LEVEL: Log level (debug, info, warn, error)
//   - AUDIT_DATABASE_URL: PostgreSQL connection string for audit events
package main
