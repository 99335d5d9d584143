package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ShapeList is an ordered collection of shapes searched by linear scan.
// It is itself a Shape, so lists can nest.
type ShapeList struct {
	shapes []core.Shape
}

// NewShapeList creates a list holding the given shapes in order
func NewShapeList(shapes ...core.Shape) *ShapeList {
	return &ShapeList{shapes: append([]core.Shape(nil), shapes...)}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape core.Shape) {
	l.shapes = append(l.shapes, shape)
}

// Len returns the number of shapes in the list
func (l *ShapeList) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *ShapeList) Shapes() []core.Shape {
	return l.shapes
}

// Hit returns the closest hit among all shapes.
// The upper bound shrinks to each accepted hit, so on equal t the earlier shape wins.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
