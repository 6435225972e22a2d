package scenekit

// Shared fakes for the package's tests: a fake Buffer/Texture/Renderer
// and a fake Output that doubles as its own DamageAccumulator, mirroring
// ebitenscene.Output but without any ebiten dependency.

type fakeBuffer struct {
	w, h int
	refs int
}

func newFakeBuffer(w, h int) *fakeBuffer {
	return &fakeBuffer{w: w, h: h, refs: 1}
}

func (b *fakeBuffer) Lock() Buffer       { b.refs++; return b }
func (b *fakeBuffer) Unlock()            { b.refs-- }
func (b *fakeBuffer) Size() (int, int)   { return b.w, b.h }

type fakeTexture struct {
	w, h      int
	destroyed bool
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }
func (t *fakeTexture) Destroy()         { t.destroyed = true }

type fakeRenderer struct {
	beginCalls      int
	endCalls        int
	clearCalls      int
	renderRectCalls int
	renderTexCalls  int
	scissors        []*Box
	texFromBuffer   int
}

func (r *fakeRenderer) Begin(width, height int) { r.beginCalls++ }
func (r *fakeRenderer) End()                    { r.endCalls++ }
func (r *fakeRenderer) Scissor(box *Box)        { r.scissors = append(r.scissors, box) }
func (r *fakeRenderer) Clear(color [4]float32)  { r.clearCalls++ }

func (r *fakeRenderer) RenderRect(box Box, color [4]float32, matrix [9]float32) {
	r.renderRectCalls++
}

func (r *fakeRenderer) RenderSubTexture(tex Texture, srcBox FBox, matrix [9]float32, alpha float32) {
	r.renderTexCalls++
}

func (r *fakeRenderer) TextureFromBuffer(buffer Buffer) Texture {
	r.texFromBuffer++
	fb, ok := buffer.(*fakeBuffer)
	if !ok {
		return nil
	}
	return &fakeTexture{w: fb.w, h: fb.h}
}

// fakeOutput implements both Output and DamageAccumulator, the way a
// single-buffered window adapter naturally does.
type fakeOutput struct {
	w, h         int
	transform    OutputTransform
	scale        float32
	testResult   bool
	commitResult bool
	attached     Buffer

	pending *Region

	commitCount   int
	rollbackCount int
	setDamage     *Region

	commitListeners []func(OutputCommitField)
	modeListeners   []func()
}

func newFakeOutput(w, h int, scale float32) *fakeOutput {
	return &fakeOutput{w: w, h: h, scale: scale, testResult: true, commitResult: true, pending: NewRegion()}
}

func (o *fakeOutput) EffectiveResolution() (width, height int) {
	w, h := o.TransformedResolution()
	if o.scale <= 0 {
		return w, h
	}
	return int(float32(w) / o.scale), int(float32(h) / o.scale)
}

func (o *fakeOutput) TransformedResolution() (width, height int) {
	if o.transform.SwapsAxes() {
		return o.h, o.w
	}
	return o.w, o.h
}

func (o *fakeOutput) RawResolution() (width, height int)  { return o.w, o.h }
func (o *fakeOutput) Transform() OutputTransform          { return o.transform }
func (o *fakeOutput) Scale() float32                      { return o.scale }
func (o *fakeOutput) TransformMatrix() [9]float32         { return identityMat3() }

func (o *fakeOutput) AttachBuffer(buffer Buffer) bool {
	o.attached = buffer
	return true
}

func (o *fakeOutput) Test() bool { return o.testResult }

func (o *fakeOutput) Commit() bool {
	o.commitCount++
	return o.commitResult
}

func (o *fakeOutput) Rollback() { o.rollbackCount++ }

func (o *fakeOutput) SetDamage(region *Region)              { o.setDamage = region }
func (o *fakeOutput) ScheduleFrame()                        {}
func (o *fakeOutput) RenderSoftwareCursors(region *Region)  {}

func (o *fakeOutput) OnCommit(fn func(OutputCommitField)) func() {
	o.commitListeners = append(o.commitListeners, fn)
	idx := len(o.commitListeners) - 1
	return func() { o.commitListeners[idx] = nil }
}

func (o *fakeOutput) OnModeChange(fn func()) func() {
	o.modeListeners = append(o.modeListeners, fn)
	idx := len(o.modeListeners) - 1
	return func() { o.modeListeners[idx] = nil }
}

func (o *fakeOutput) Add(region *Region)    { o.pending.Add(region) }
func (o *fakeOutput) AddBox(box Box)        { o.pending.AddBox(box) }
func (o *fakeOutput) AddWhole()             { o.pending.AddBox(Box{Width: o.w, Height: o.h}) }
func (o *fakeOutput) Current() *Region      { return o.pending }

func (o *fakeOutput) AttachRender() (needsFrame bool, damage *Region, ok bool) {
	if o.pending.Empty() {
		return false, NewRegion(), true
	}
	damage = o.pending.Copy()
	o.pending = NewRegion()
	return true, damage, true
}

// newTestScene returns a scene with one fake output sized (w, h) at
// scene-origin, plus the output/scene-output pair for assertions.
func newTestScene(w, h int) (*Scene, *fakeOutput, *SceneOutput) {
	scene := NewScene()
	out := newFakeOutput(w, h, 1)
	so := NewSceneOutput(scene, out, out)
	return scene, out, so
}
