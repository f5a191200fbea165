package system

import (
	"math"
	"testing"

	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
)

func TestProjectFacesCube(t *testing.T) {
	s := defaultSettings(t)
	w, _ := newTestScene(t, s)

	faces := ProjectFaces(w, 800, 600, nil)

	// The default camera sees three sides of the cube, two triangles each.
	if len(faces) != 6 {
		t.Fatalf("expected 6 visible faces, got %d", len(faces))
	}
	for i, f := range faces {
		for _, p := range f.Screen {
			if p.X() < 0 || p.X() > 800 || p.Y() < 0 || p.Y() > 600 {
				t.Fatalf("face %d projects off screen: %v", i, f.Screen)
			}
		}
		for _, c := range f.Color {
			if c < 0 || c > 1 {
				t.Fatalf("face %d color out of range: %v", i, f.Color)
			}
		}
		if i > 0 && faces[i-1].Depth < f.Depth {
			t.Fatalf("faces not sorted back to front at %d", i)
		}
	}
}

func TestProjectFacesFollowsRotation(t *testing.T) {
	s := defaultSettings(t)
	w, e := newTestScene(t, s)
	before := ProjectFaces(w, 800, 600, nil)

	v, _ := ecs.Get(w, e, component.ViewableComponent.Kind())
	v.Rot = math.Pi / 4
	NewOrientationSystem(s).Update(w)
	after := ProjectFaces(w, 800, 600, nil)

	if len(after) == 0 {
		t.Fatal("rotated cube has no visible faces")
	}
	same := len(before) == len(after)
	for i := 0; same && i < len(before); i++ {
		same = before[i].Screen == after[i].Screen
	}
	if same {
		t.Fatal("rotation did not change the projection")
	}
}

func TestProjectFacesWithoutCamera(t *testing.T) {
	w := ecs.NewWorld()
	if got := ProjectFaces(w, 800, 600, nil); len(got) != 0 {
		t.Fatalf("expected no faces, got %d", len(got))
	}

	s := defaultSettings(t)
	w, _ = newTestScene(t, s)
	if got := ProjectFaces(w, 0, 600, nil); len(got) != 0 {
		t.Fatalf("zero-width viewport should draw nothing, got %d", len(got))
	}
}
