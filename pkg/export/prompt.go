package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptSnapshotOptions asks the user for a snapshot format and output path.
// Used by the one-shot snapshot mode when no output path was given on the
// command line.
func PromptSnapshotOptions(defaultPath string) (path, format string, err error) {
	format = "png"
	path = defaultPath

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Snapshot format").
				Options(
					huh.NewOption("PNG (raster)", "png"),
					huh.NewOption("SVG (vector)", "svg"),
				).
				Value(&format),
			huh.NewInput().
				Title("Output path").
				Placeholder(defaultPath).
				Value(&path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path must not be empty")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(path), format, nil
}
