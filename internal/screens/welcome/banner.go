package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntype/internal/ui/theme"
)

var bannerArt = strings.Join([]string{
	" _                      _",
	"| | ___  __ _ _ __ _ __ | |_ _   _ _ __   ___",
	"| |/ _ \\/ _` | '__| '_ \\| __| | | | '_ \\ / _ \\",
	"| |  __/ (_| | |  | | | | |_| |_| | |_) |  __/",
	"|_|\\___|\\__,_|_|  |_| |_|\\__|\\__, | .__/ \\___|",
	"                             |___/|_|",
}, "\n")

const bannerCompact = "l e a r n t y p e"

// RenderBanner returns the learntype banner in the primary color, or a
// compact one-line version for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
