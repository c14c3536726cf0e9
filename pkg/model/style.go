package model

import (
	"fmt"
	"strings"
)

// Shape is the visual shape of an element. The zero value is [ShapeBox].
type Shape int

const (
	ShapeBox Shape = iota
	ShapeRoundedBox
	ShapeCircle
	ShapeEllipse
	ShapeHexagon
	ShapeCylinder
	ShapePipe
	ShapePerson
	ShapeRobot
	ShapeFolder
	ShapeWebBrowser
	ShapeMobileDevicePortrait
	ShapeMobileDeviceLandscape
	ShapeComponent
)

var shapeNames = []string{
	ShapeBox:                   "Box",
	ShapeRoundedBox:            "RoundedBox",
	ShapeCircle:                "Circle",
	ShapeEllipse:               "Ellipse",
	ShapeHexagon:               "Hexagon",
	ShapeCylinder:              "Cylinder",
	ShapePipe:                  "Pipe",
	ShapePerson:                "Person",
	ShapeRobot:                 "Robot",
	ShapeFolder:                "Folder",
	ShapeWebBrowser:            "WebBrowser",
	ShapeMobileDevicePortrait:  "MobileDevicePortrait",
	ShapeMobileDeviceLandscape: "MobileDeviceLandscape",
	ShapeComponent:             "Component",
}

// String returns the shape name, which is also the icon file basename.
func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape parses a shape name case-insensitively. The empty string parses
// as [ShapeBox].
func ParseShape(s string) (Shape, error) {
	if s == "" {
		return ShapeBox, nil
	}
	for i, name := range shapeNames {
		if strings.EqualFold(name, s) {
			return Shape(i), nil
		}
	}
	return ShapeBox, fmt.Errorf("unknown shape %q", s)
}

// ElementStyle is a partial visual rule keyed by Tag. Nil fields mean "do not
// override"; Shape is overridden only when it differs from ShapeBox.
type ElementStyle struct {
	Tag        string
	Background *string
	Color      *string
	Shape      Shape
	Width      *int
	Height     *int
	FontSize   *int
}

// String returns a pointer to s, for building styles in code.
func String(s string) *string { return &s }

// Int returns a pointer to i, for building styles in code.
func Int(i int) *int { return &i }
