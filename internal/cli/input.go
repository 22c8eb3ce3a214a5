package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/progress-engine/internal/model"
)

// dateArg returns the day key given as the first argument, or today in the
// configured location.
func dateArg(args []string) (string, error) {
	if len(args) == 0 || args[0] == "today" {
		return time.Now().In(location()).Format(model.DateLayout), nil
	}
	if args[0] == "yesterday" {
		return time.Now().In(location()).AddDate(0, 0, -1).Format(model.DateLayout), nil
	}
	if _, err := model.ParseDate(args[0]); err != nil {
		return "", fmt.Errorf("date %q must be YYYY-MM-DD", args[0])
	}
	return args[0], nil
}

// parseAt reads a clock time ("07:15") on date or a full RFC 3339 timestamp.
func parseAt(date, v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(model.DateLayout+" 15:04", date+" "+v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q must be HH:MM or RFC 3339", v)
	}
	return t, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
