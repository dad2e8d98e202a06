package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art centred for the current terminal.
func RenderBanner() string {
	return renderBanner(termWidth())
}

func renderBanner(width int) string {
	art := BannerStyle.Render(strings.TrimRight(bannerRaw, "\n"))
	if width <= lipgloss.Width(art) {
		return art + "\n"
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, art) + "\n"
}

func termWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
