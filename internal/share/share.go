// Package share builds the plain-text payload handed to the host's
// "share text" facility and delivers it.
package share

import (
	"strings"
	"time"

	"github.com/starford/quicknote/internal/models"
)

// DateLayout renders timestamps the way the list screen shows them,
// e.g. "Tue, 14 Nov 2023 at 10:13 PM".
const DateLayout = "Mon, 02 Jan 2006 at 03:04 PM"

// DateFromMillis formats an epoch-millisecond timestamp in loc.
// A nil loc means time.Local.
func DateFromMillis(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format(DateLayout)
}

// Format returns the share payload for n: its text, the formatted
// modification date and an application-name suffix.
func Format(n models.Note, appName string, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(n.Text)
	b.WriteString("\n\n Create on : ")
	b.WriteString(DateFromMillis(n.ModifiedAt, loc))
	b.WriteString("\n  By :")
	b.WriteString(appName)
	return b.String()
}
