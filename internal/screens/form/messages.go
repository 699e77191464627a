package form

import (
	"time"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
)

// guidanceReadyMsg is sent when the guidance service has queued results.
type guidanceReadyMsg struct {
	svc *guidance.Service
}

// spinnerTickMsg animates the "generating" line while a request is pending.
type spinnerTickMsg time.Time
