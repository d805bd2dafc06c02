package views

import (
	"strings"

	"ghgrip/internal/domain"
)

// ProfileRenderer renders the signed-in user's header
type ProfileRenderer struct {
	styles *Styles
}

// NewProfileRenderer creates a new profile renderer
func NewProfileRenderer(styles *Styles) *ProfileRenderer {
	return &ProfileRenderer{
		styles: styles,
	}
}

// RenderProfile renders name, @login and bio. Nil viewer renders a placeholder.
func (p *ProfileRenderer) RenderProfile(viewer *domain.Viewer) string {
	if viewer == nil {
		return p.styles.Dim.Render("Loading profile...")
	}

	var parts []string
	if viewer.Name != "" {
		parts = append(parts, p.styles.ProfileName.Render(viewer.Name))
	}
	if viewer.Login != "" {
		parts = append(parts, p.styles.ProfileLogin.Render("@"+viewer.Login))
	}
	line := strings.Join(parts, " ")

	if viewer.Bio != "" {
		bio := strings.Join(strings.Fields(viewer.Bio), " ")
		line += "\n" + p.styles.ProfileBio.Render(bio)
	}
	return line
}
