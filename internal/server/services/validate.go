package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/google/uuid"
)

// PlaceholderTitle replaces a blank record title.
const PlaceholderTitle = "Untitled record"

const maxCategoryName = 50

// Icons is the closed set of category icon identifiers understood by the
// client.
var Icons = []string{
	"bookmark", "cafe", "film", "calendar", "airplane", "camera", "book",
	"musical-notes", "fitness", "car", "home", "gift", "heart", "star",
	"wine", "restaurant", "leaf", "game-controller", "color-palette", "paw",
}

var iconSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Icons))
	for _, i := range Icons {
		m[i] = struct{}{}
	}
	return m
}()

var colorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// CategoryInput is the writable part of a category.
type CategoryInput struct {
	Name  string
	Icon  string
	Color string
}

func (in CategoryInput) normalize() (CategoryInput, error) {
	out := CategoryInput{
		Name:  strings.TrimSpace(in.Name),
		Icon:  strings.TrimSpace(in.Icon),
		Color: strings.TrimSpace(in.Color),
	}
	switch {
	case out.Name == "" || out.Icon == "" || out.Color == "":
		return out, common.NewValidationError("category", "name, icon and color are required")
	case utf8.RuneCountInString(out.Name) > maxCategoryName:
		return out, common.NewValidationError("name", "name must be at most %d characters", maxCategoryName)
	}
	if _, ok := iconSet[out.Icon]; !ok {
		return out, common.NewValidationError("icon", "unknown icon %q", out.Icon)
	}
	if !colorRe.MatchString(out.Color) {
		return out, common.NewValidationError("color", "color must be a hex code like #RRGGBB")
	}
	return out, nil
}

// resourceID accepts only well-formed ids. Anything else cannot match a row,
// so callers report it as not found.
func resourceID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrorNotFound
	}
	return u.String(), nil
}
