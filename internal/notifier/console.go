package notifier

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pillminder/internal/models"
)

var (
	consoleTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF79C6"))
	consoleTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Console prints reminders to a writer. It is the fallback surface for
// `reminders watch` when no tray app is running.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out, now: time.Now}
}

func (c *Console) Supported() error {
	if c.out == nil {
		return ErrUnsupported
	}
	return nil
}

func (c *Console) Notify(n models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.out == nil {
		return ErrUnsupported
	}
	_, err := fmt.Fprintf(c.out, "%s %s: %s\n",
		consoleTimeStyle.Render(c.now().Format("15:04")),
		consoleTitleStyle.Render(n.Title),
		n.Body,
	)
	return err
}
