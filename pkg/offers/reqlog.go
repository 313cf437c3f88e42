package offers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/offerly-hq/offers-sdk-go/pkg/transport"
)

// logRequest writes one file per call into the log dir when logging is
// enabled. Files are independent, so concurrent calls never contend on a
// shared handle. Logging failures are reported through the Logger, never
// propagated into the operation's result.
func (c *Client) logRequest(op, url string, headers map[string]string, body any, env transport.Envelope) {
	if !c.logging {
		return
	}

	if err := os.MkdirAll(c.logDir, 0o755); err != nil {
		c.log.WarnObj("request log directory unavailable", "error", err.Error())
		return
	}

	stamp := c.now().Format("2006-01-02-150405.000")
	name := fmt.Sprintf("%s-%s.log", stamp, op)
	content := fmt.Sprintf("URL: %s\nHeaders:\n%v\nData:\n%v\nResponse:\nstatus=%d data=%v\n",
		url, headers, body, env.StatusCode, env.Data)

	if err := os.WriteFile(filepath.Join(c.logDir, name), []byte(content), 0o644); err != nil {
		c.log.WarnObj("request log write failed", "error", err.Error())
	}
}
