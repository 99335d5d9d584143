package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestShapeList_Empty(t *testing.T) {
	list := NewShapeList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if hit, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit || hit != nil {
		t.Errorf("Expected no hit from empty list, got %v", hit)
	}
}

func TestShapeList_ClosestHit(t *testing.T) {
	near := &stubMaterial{name: "near"}
	far := &stubMaterial{name: "far"}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name   string
		shapes []core.Shape
	}{
		{
			name: "far inserted first",
			shapes: []core.Shape{
				NewSphere(core.NewVec3(0, 0, -5), 1, far),
				NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
			},
		},
		{
			name: "near inserted first",
			shapes: []core.Shape{
				NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
				NewSphere(core.NewVec3(0, 0, -5), 1, far),
			},
		},
		{
			name: "moving sphere nearest",
			shapes: []core.Shape{
				NewSphere(core.NewVec3(0, 0, -5), 1, far),
				NewMovingSphere(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, -2), 0, 1, 0.5, near),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewShapeList(tt.shapes...)
			hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if hit.Material != near {
				t.Errorf("Expected nearer material, got %v", hit.Material)
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("Expected t=1.5, got %f", hit.T)
			}
		})
	}
}

func TestShapeList_TieGoesToFirstInserted(t *testing.T) {
	first := &stubMaterial{name: "first"}
	second := &stubMaterial{name: "second"}
	list := NewShapeList()
	list.Add(NewSphere(core.NewVec3(0, 0, -2), 0.5, first))
	list.Add(NewSphere(core.NewVec3(0, 0, -2), 0.5, second))

	hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != first {
		t.Errorf("Expected first inserted material to win the tie, got %v", hit.Material)
	}
}

func TestShapeList_RespectsInterval(t *testing.T) {
	list := NewShapeList(NewSphere(core.NewVec3(0, 0, -2), 0.5, nil))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, 1.0); isHit {
		t.Error("Expected miss when sphere lies beyond tMax")
	}
}

func TestShapeList_AddClearLen(t *testing.T) {
	list := NewShapeList()
	list.Add(NewSphere(core.NewVec3(0, 0, 0), 1, nil))
	list.Add(NewSphere(core.NewVec3(0, 0, 0), 2, nil))
	if list.Len() != 2 || len(list.Shapes()) != 2 {
		t.Fatalf("Expected 2 shapes, got %d", list.Len())
	}

	nested := NewShapeList(list)
	if _, isHit := nested.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); !isHit {
		t.Error("Expected nested list to report hit")
	}
}
