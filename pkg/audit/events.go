package audit

import (
	"fmt"
	"strconv"
	"time"
)

// KeyGenerationEvent records the outcome of a key generation run. It never
// carries key material, only the public fingerprint.
type KeyGenerationEvent struct {
	KeySize      int
	Policy       string
	Attempts     int
	Fingerprint  string
	Duration     time.Duration
	Success      bool
	ErrorMessage string
}

func (e KeyGenerationEvent) MessageID() string {
	return "keygen"
}

func (e KeyGenerationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("generated %d-bit key %s after %d attempts", e.KeySize, e.Fingerprint, e.Attempts)
	}
	msg := fmt.Sprintf("failed to generate %d-bit key after %d attempts", e.KeySize, e.Attempts)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e KeyGenerationEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e KeyGenerationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e KeyGenerationEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDKey: {
			"size":   strconv.Itoa(e.KeySize),
			"policy": e.Policy,
		},
		SDIDAction: {
			"operation": "generate",
		},
		SDIDProcess: {
			"attempts":    strconv.Itoa(e.Attempts),
			"duration_ms": strconv.FormatInt(e.Duration.Milliseconds(), 10),
		},
	}
	if e.Fingerprint != "" {
		sd[SDIDKey]["fingerprint"] = e.Fingerprint
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
