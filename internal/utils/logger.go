package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain action. Keep messages
// summarized; never log credentials or license images.
func LogEvent(requestID, module, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}

// LogWarn is LogEvent for non-fatal faults that still deserve a trace.
func LogWarn(requestID, module, action string, err error) {
	if err == nil {
		return
	}
	log.Printf("[%s] action=%s request_id=%s warn=%s",
		strings.ToUpper(module), action, strings.TrimSpace(requestID), err.Error())
}
