package scenekit

// SceneOutput binds a Scene to one physical Output: its layout position,
// a dense index used for the active-outputs bitset, and the output's
// damage accumulator.
type SceneOutput struct {
	Scene  *Scene
	Output Output

	// X and Y are this output's position in scene (layout) coordinates.
	X, Y int
	// Index is this output's bit position in every buffer node's
	// active-outputs bitset, the minimum free integer in [0, 64) at
	// creation time.
	Index int

	Damage DamageAccumulator

	prevScanout bool

	// Destroy fires when this scene-output is destroyed.
	Destroy Signal[struct{}]

	unsubscribeCommit func()
	unsubscribeMode   func()
}

// NewSceneOutput binds scene to output, using damage as that output's
// damage accumulator. Indices are assigned densely; creating a 65th
// scene-output is a programming-contract violation and panics.
func NewSceneOutput(scene *Scene, output Output, damage DamageAccumulator) *SceneOutput {
	index := 0
	insertAt := 0
	for i, so := range scene.Outputs {
		if so.Index != index {
			break
		}
		index++
		insertAt = i + 1
	}
	if index >= 64 {
		panic("scenekit: NewSceneOutput: scene already has 64 scene-outputs")
	}

	so := &SceneOutput{Scene: scene, Output: output, Index: index, Damage: damage}

	scene.Outputs = append(scene.Outputs, nil)
	copy(scene.Outputs[insertAt+1:], scene.Outputs[insertAt:])
	scene.Outputs[insertAt] = so

	so.unsubscribeCommit = output.OnCommit(func(changed OutputCommitField) {
		if changed&(OutputCommitMode|OutputCommitTransform|OutputCommitScale) != 0 {
			updateOutputs(scene.Root, nil)
		}
	})
	so.unsubscribeMode = output.OnModeChange(func() {
		damage.AddWhole()
		updateOutputs(scene.Root, nil)
	})

	damage.AddWhole()
	updateOutputs(scene.Root, nil)

	return so
}

// DestroySceneOutput tears down so: it fires Destroy, recomputes
// membership with so excluded (so every buffer node that was active on
// it emits a final OutputLeave), detaches its output listeners, and
// removes it from its scene.
func DestroySceneOutput(so *SceneOutput) {
	if so == nil {
		return
	}

	so.Destroy.Emit(struct{}{})

	updateOutputs(so.Scene.Root, so)

	so.unsubscribeCommit()
	so.unsubscribeMode()

	for i, o := range so.Scene.Outputs {
		if o == so {
			so.Scene.Outputs = append(so.Scene.Outputs[:i], so.Scene.Outputs[i+1:]...)
			break
		}
	}
}

// SetPosition moves so to (lx, ly) in scene (layout) coordinates. A
// no-op if unchanged; otherwise damages the whole output and triggers an
// output-membership recomputation.
func (so *SceneOutput) SetPosition(lx, ly int) {
	if so.X == lx && so.Y == ly {
		return
	}
	so.X, so.Y = lx, ly
	so.Damage.AddWhole()
	updateOutputs(so.Scene.Root, nil)
}

// viewport returns this output's layout-space viewport box, using its
// effective (transform- and scale-aware logical) resolution.
func (so *SceneOutput) viewport() Box {
	w, h := so.Output.EffectiveResolution()
	return Box{X: so.X, Y: so.Y, Width: w, Height: h}
}
