package service

import (
	"encoding/json"
	"log"
	"time"
)

// logEvent emits one JSON object per line to stdout, matching the shape the
// rest of the application logs in.
func logEvent(fields map[string]any) {
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := fields["level"]; !ok {
		fields["level"] = "info"
	}

	b, err := json.Marshal(fields)
	if err != nil {
		log.Printf("failed to marshal log event: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
