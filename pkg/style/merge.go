package style

import "github.com/matzehuels/c4dgml/pkg/model"

// JoinedTag is the tag carried by merged styles.
const JoinedTag = "joinedStyle"

// Overlay applies every set field of s onto acc and returns the result.
// Nil fields leave acc untouched; Shape is applied only when it is not
// [model.ShapeBox].
func Overlay(acc, s model.ElementStyle) model.ElementStyle {
	if s.Background != nil {
		acc.Background = s.Background
	}
	if s.Color != nil {
		acc.Color = s.Color
	}
	if s.FontSize != nil {
		acc.FontSize = s.FontSize
	}
	if s.Height != nil {
		acc.Height = s.Height
	}
	if s.Shape != model.ShapeBox {
		acc.Shape = s.Shape
	}
	if s.Width != nil {
		acc.Width = s.Width
	}
	return acc
}

// Merge folds styles into a single style by overlaying them in reverse order.
// The earliest style therefore has the final say on every field it sets.
func Merge(styles []model.ElementStyle) model.ElementStyle {
	acc := model.ElementStyle{Tag: JoinedTag}
	for i := len(styles) - 1; i >= 0; i-- {
		acc = Overlay(acc, styles[i])
	}
	return acc
}

// Matching returns the catalog entries whose tag is one of categories, in
// catalog order.
func Matching(catalog []model.ElementStyle, categories []string) []model.ElementStyle {
	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	var out []model.ElementStyle
	for _, s := range catalog {
		if want[s.Tag] {
			out = append(out, s)
		}
	}
	return out
}
