package assistant

import (
	"fmt"
	"io"
	"strings"
)

const timeLayout = "2006-01-02 15:04:05"

// Print writes the thread messages of a completed run, one per line in the
// order the service returned them. Any other outcome prints the status alone.
func Print(w io.Writer, out *Outcome) error {
	if !out.Completed() {
		_, err := fmt.Fprintln(w, out.Run.Status)
		return err
	}
	for _, msg := range out.Messages {
		if _, err := fmt.Fprintf(w, "%s - %10s: %s\n",
			msg.CreatedAt.Format(timeLayout), msg.Role, strings.Join(msg.Text, "\n")); err != nil {
			return err
		}
	}
	return nil
}
