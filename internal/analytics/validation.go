package analytics

import "fmt"

const (
	maxJobIDLength    = 64
	maxMetaLength     = 500
	visitorHashLength = 16
)

// ValidateJobViewPayload validates view event payload fields before
// they are persisted. Messages that fail are dead-lettered, never
// retried.
func ValidateJobViewPayload(payload JobViewPayload) error {
	if payload.JobID == "" {
		return fmt.Errorf("job_id is required")
	}
	if len(payload.JobID) > maxJobIDLength {
		return fmt.Errorf("job_id too long")
	}
	if payload.VisitorHash == "" {
		return fmt.Errorf("visitor_hash is required")
	}
	if len(payload.VisitorHash) != visitorHashLength || !isHex(payload.VisitorHash) {
		return fmt.Errorf("visitor_hash must be %d hex chars", visitorHashLength)
	}
	if payload.CountryCode != "" && len(payload.CountryCode) != 2 {
		return fmt.Errorf("country_code must be 2 chars")
	}
	if payload.ViewedAt <= 0 {
		return fmt.Errorf("viewed_at must be set")
	}
	if len(payload.Referrer) > maxMetaLength {
		return fmt.Errorf("referrer too long")
	}
	if len(payload.UserAgent) > maxMetaLength {
		return fmt.Errorf("user_agent too long")
	}
	return nil
}

func isHex(value string) bool {
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') {
			continue
		}
		return false
	}
	return true
}
