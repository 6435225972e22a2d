package scenekit

import "testing"

func TestNewSceneOutputAssignsDenseIndices(t *testing.T) {
	scene := NewScene()
	a := newFakeOutput(10, 10, 1)
	b := newFakeOutput(10, 10, 1)
	soA := NewSceneOutput(scene, a, a)
	soB := NewSceneOutput(scene, b, b)

	if soA.Index != 0 || soB.Index != 1 {
		t.Errorf("indices = (%d, %d), want (0, 1)", soA.Index, soB.Index)
	}
}

func TestNewSceneOutputReusesFreedIndex(t *testing.T) {
	scene := NewScene()
	a := newFakeOutput(10, 10, 1)
	b := newFakeOutput(10, 10, 1)
	soA := NewSceneOutput(scene, a, a)
	soB := NewSceneOutput(scene, b, b)
	_ = soB

	DestroySceneOutput(soA)

	c := newFakeOutput(10, 10, 1)
	soC := NewSceneOutput(scene, c, c)
	if soC.Index != 0 {
		t.Errorf("new scene-output should reuse the freed index 0, got %d", soC.Index)
	}
}

func TestNewSceneOutputDamagesWholeOnCreation(t *testing.T) {
	scene := NewScene()
	out := newFakeOutput(10, 10, 1)
	NewSceneOutput(scene, out, out)
	if out.pending.Empty() {
		t.Error("a newly created scene-output should start fully damaged")
	}
}

func TestSceneOutputSetPositionMovesViewport(t *testing.T) {
	scene, out, so := newTestScene(50, 50)
	so.SetPosition(100, 200)

	vp := so.viewport()
	if vp.X != 100 || vp.Y != 200 {
		t.Errorf("viewport origin = (%d, %d), want (100, 200)", vp.X, vp.Y)
	}
	_ = out
}

func TestSceneOutputSetPositionNoopWhenUnchanged(t *testing.T) {
	scene, out, so := newTestScene(50, 50)
	out.pending = NewRegion()
	so.SetPosition(0, 0)
	if !out.pending.Empty() {
		t.Error("SetPosition to the current position should not re-damage")
	}
	_ = scene
}

func TestDestroySceneOutputRemovesFromScene(t *testing.T) {
	scene := NewScene()
	out := newFakeOutput(10, 10, 1)
	so := NewSceneOutput(scene, out, out)

	destroyed := false
	so.Destroy.Listen(func(struct{}) { destroyed = true })

	DestroySceneOutput(so)

	if !destroyed {
		t.Error("expected Destroy to fire")
	}
	for _, s := range scene.Outputs {
		if s == so {
			t.Error("destroyed scene-output should be removed from scene.Outputs")
		}
	}
}

func TestDestroySceneOutputEmitsFinalOutputLeave(t *testing.T) {
	scene, _, so := newTestScene(100, 100)
	n := NewBuffer(scene.Root, newFakeBuffer(10, 10))

	left := false
	n.OutputLeave.Listen(func(s *SceneOutput) {
		if s == so {
			left = true
		}
	})

	DestroySceneOutput(so)

	if !left {
		t.Error("a buffer active on the destroyed output should see a final OutputLeave")
	}
}

func TestDestroySceneOutputNilIsNoop(t *testing.T) {
	DestroySceneOutput(nil) // must not panic
}

func TestSixtyFifthSceneOutputPanics(t *testing.T) {
	scene := NewScene()
	for i := 0; i < 64; i++ {
		out := newFakeOutput(10, 10, 1)
		NewSceneOutput(scene, out, out)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected a panic creating a 65th scene-output")
		}
	}()
	out := newFakeOutput(10, 10, 1)
	NewSceneOutput(scene, out, out)
}
