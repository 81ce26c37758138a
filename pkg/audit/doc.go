// Package audit provides audit logging for key generation.
//
// Events are written as RFC5424 syslog lines and, when a Store is configured,
// persisted to PostgreSQL. Auditing is off by default:
//
//	audit.SetEnabled(true)
//	audit.Log(audit.KeyGenerationEvent{KeySize: 2048, Attempts: 1, Success: true})
//
// The messages table is created by the embedded migrations:
//
//	if err := audit.Migrate(databaseURL); err != nil {
//	    log.Fatal(err)
//	}
package audit
