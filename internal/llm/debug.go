package llm

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

var roleColors = map[Role]*color.Color{
	RoleSystem: color.New(color.FgYellow, color.Bold),
	RoleUser:   color.New(color.FgCyan, color.Bold),
}

// WriteMessages prints msgs to w, one block per message, and logs them at
// debug level.
func WriteMessages(w io.Writer, msgs []Message) {
	for i, m := range msgs {
		c, ok := roleColors[m.Role]
		if !ok {
			c = color.New(color.Bold)
		}
		_, _ = fmt.Fprintf(w, "%s\n%s\n", c.Sprintf("[%d] %s:", i, m.Role), m.Content)
		slog.Debug("assembled message", "index", i, "role", string(m.Role), "chars", len(m.Content))
	}
}
