package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Aspect-ratio selections understood by the generation flows. Named ratios are
// embedded verbatim; AspectAuto contributes no dimension text at all.
const (
	AspectAuto   = "auto"
	AspectCustom = "custom"

	// AspectIPhone is a convenience preset; callers must resolve it to fixed
	// pixel dimensions with ResolvePreset before building an instruction.
	AspectIPhone = "iphone_wallpaper"

	IPhoneWallpaperWidth  = 1170
	IPhoneWallpaperHeight = 2532
)

// AspectRatio captures the user's aspect selection. Width and Height are the
// raw custom-dimension form fields and only matter when Value is AspectCustom.
type AspectRatio struct {
	Value  string `json:"value"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// DefaultAspectRatio is the selection after a reset.
func DefaultAspectRatio() AspectRatio {
	return AspectRatio{Value: AspectAuto}
}

// Validate checks the custom-dimension precondition: when Value is custom,
// both fields must parse as positive integers. Other selections are always
// valid here; preset resolution is the caller's concern.
func (a AspectRatio) Validate() error {
	if a.Value != AspectCustom {
		return nil
	}
	if _, err := parsePositiveInt(a.Width); err != nil {
		return NewValidationError("aspect_custom_invalid")
	}
	if _, err := parsePositiveInt(a.Height); err != nil {
		return NewValidationError("aspect_custom_invalid")
	}
	return nil
}

// ResolvePreset substitutes the iPhone wallpaper preset with its fixed pixel
// dimensions. All other selections pass through unchanged.
func (a AspectRatio) ResolvePreset() AspectRatio {
	if a.Value != AspectIPhone {
		return a
	}
	return AspectRatio{
		Value:  AspectCustom,
		Width:  strconv.Itoa(IPhoneWallpaperWidth),
		Height: strconv.Itoa(IPhoneWallpaperHeight),
	}
}

// DimensionText renders the fragment embedded into a generation instruction:
// empty for auto, literal pixel dimensions for custom, the ratio string
// otherwise. Callers must Validate (and ResolvePreset) first.
func (a AspectRatio) DimensionText() string {
	switch a.Value {
	case AspectAuto, "":
		return ""
	case AspectCustom:
		w, errW := parsePositiveInt(a.Width)
		h, errH := parsePositiveInt(a.Height)
		if errW != nil || errH != nil {
			return ""
		}
		return fmt.Sprintf("%dx%d px", w, h)
	default:
		return a.Value
	}
}

func parsePositiveInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value %d is not positive", n)
	}
	return n, nil
}
