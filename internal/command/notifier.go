package command

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

var (
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd")).Bold(true)
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")).Bold(true)
)

// PrintFunc prints one formatted line. Matches display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes notifications through a print function.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewCLINotifier creates a terminal notifier. If printFn is nil,
// fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s", noticeStyle.Render("  "+message))
	return nil
}

// NotifyUrgent prints an alert, e.g. a failed export.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.printFn("%s", urgentStyle.Render("  "+message))
	return nil
}

// LogNotifier sends notifications to the log only. The HTTP server uses
// it since nobody is watching a terminal.
type LogNotifier struct {
	log *logger.Logger
}

var _ domain.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs at info level.
func (n *LogNotifier) Notify(ctx context.Context, message string) error {
	n.log.Info("%s", message)
	return nil
}

// NotifyUrgent logs at warn level.
func (n *LogNotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Warn("%s", message)
	return nil
}
