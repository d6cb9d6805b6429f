package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/homily/internal/config"
)

const (
	AppName    = "homily"
	ProjectURL = "https://github.com/pders01/homily"
)

var LogoLines = []string{
	"█   █ ▄▀▀▀▄ █▄ ▄█ ▀█▀ █   █   █",
	"█▀▀▀█ █   █ █ ▀ █  █  █   ▀▄ ▄▀",
	"█   █ ▀▄▄▄▀ █   █ ▄█▄ █▄▄▄  █",
}

var BannerColors = []lipgloss.Color{
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#FFA86B"),
}

// Styles are the four row and status looks the renderer uses.
type Styles struct {
	Normal     lipgloss.Style
	Selected   lipgloss.Style
	Emphasized lipgloss.Style
	Status     lipgloss.Style
}

func NewStyles(colors config.UIColors) Styles {
	return Styles{
		Normal: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Selected)),
		Emphasized: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Emphasized)).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.StatusForeground)).
			Background(lipgloss.Color(colors.StatusBackground)),
	}
}

// ShowBanner writes the logo, version and project URL to w.
func ShowBanner(w io.Writer, version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)

	tag := version
	if tag != "" && tag != "dev" && tag[0] != 'v' && tag[0] != 'V' {
		tag = "v" + tag
	}
	if tag != "" {
		lines = append(lines, fmt.Sprintf("%s %s", AppName, tag))
	} else {
		lines = append(lines, AppName)
	}
	lines = append(lines, ProjectURL)

	var colored []string
	for i, line := range lines {
		if line == "" {
			colored = append(colored, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		colored = append(colored, style.Render(line))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		Padding(1, 3)

	fmt.Fprintln(w, border.Render(lipgloss.JoinVertical(lipgloss.Center, colored...)))
}
