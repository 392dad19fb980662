package theme

import (
	"fmt"

	"github.com/darkawower/palettegen/internal/colors"
)

// DisplayAccents is the number of accent slots shown in the role grid.
const DisplayAccents = 6

// Role is a named colour slot.
type Role struct {
	// Key is the machine name, e.g. "accent1".
	Key string
	// Label is the human name, e.g. "Accent 1".
	Label string
	Color colors.RGB
}

// Roles returns the fixed display slots: background, foreground, six
// accents (missing ones show the foreground), hyperlink and followed link.
func (t *Theme) Roles() []Role {
	roles := []Role{
		{Key: "background", Label: "Background", Color: t.Background},
		{Key: "foreground", Label: "Foreground", Color: t.Foreground},
	}
	for i := 0; i < DisplayAccents; i++ {
		roles = append(roles, Role{
			Key:   fmt.Sprintf("accent%d", i+1),
			Label: fmt.Sprintf("Accent %d", i+1),
			Color: t.Accent(i, t.Foreground),
		})
	}
	return append(roles,
		Role{Key: "hyperlink", Label: "Hyperlink", Color: t.Hyperlink},
		Role{Key: "followed", Label: "Followed link", Color: t.Followed},
	)
}

// Variables returns the theme as ordered named colours: background,
// foreground, every accent, hyperlink and followed. Exporters that emit
// one entry per accent use this list.
func (t *Theme) Variables() []Role {
	vars := []Role{
		{Key: "background", Label: "Background", Color: t.Background},
		{Key: "foreground", Label: "Foreground", Color: t.Foreground},
	}
	for i, a := range t.Accents {
		vars = append(vars, Role{
			Key:   fmt.Sprintf("accent%d", i+1),
			Label: fmt.Sprintf("Accent %d", i+1),
			Color: a,
		})
	}
	return append(vars,
		Role{Key: "hyperlink", Label: "Hyperlink", Color: t.Hyperlink},
		Role{Key: "followed", Label: "Followed Link", Color: t.Followed},
	)
}
