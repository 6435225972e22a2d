package scenekit

import (
	"testing"
	"time"
)

func TestCommitScansOutSingleFullCoverBuffer(t *testing.T) {
	scene, out, so := newTestScene(100, 100)
	buf := newFakeBuffer(100, 100)
	n := NewBuffer(scene.Root, buf)

	r := &fakeRenderer{}
	ok := so.Commit(time.Unix(0, 0), r, nil)

	if !ok {
		t.Fatal("Commit should succeed")
	}
	if r.beginCalls != 0 {
		t.Error("a direct scan-out must not touch the renderer")
	}
	if out.attached != n.Buffer {
		t.Error("expected the covering buffer to be attached directly")
	}
	if out.commitCount != 1 {
		t.Errorf("commitCount = %d, want 1", out.commitCount)
	}
}

func TestCommitScansOutSingleFullCoverBufferOnNonOriginOutput(t *testing.T) {
	scene := NewScene()
	out := newFakeOutput(100, 100, 1)
	so := NewSceneOutput(scene, out, out)
	so.SetPosition(200, 300)

	buf := newFakeBuffer(100, 100)
	n := NewBuffer(scene.Root, buf)
	n.SetPosition(200, 300)

	r := &fakeRenderer{}
	ok := so.Commit(time.Unix(0, 0), r, nil)

	if !ok {
		t.Fatal("Commit should succeed")
	}
	if r.beginCalls != 0 {
		t.Error("a direct scan-out must not touch the renderer, even for a non-origin output")
	}
	if out.attached != n.Buffer {
		t.Error("expected the covering buffer to be attached directly")
	}
}

func TestCommitFallsBackToCompositingWhenNotFullyCovered(t *testing.T) {
	scene, out, so := newTestScene(100, 100)
	NewRect(scene.Root, 100, 100, [4]float32{1, 1, 1, 1})

	r := &fakeRenderer{}
	ok := so.Commit(time.Unix(0, 0), r, nil)

	if !ok {
		t.Fatal("Commit should succeed")
	}
	if r.beginCalls != 1 || r.endCalls != 1 {
		t.Errorf("expected exactly one render pass, got begin=%d end=%d", r.beginCalls, r.endCalls)
	}
	if r.renderRectCalls == 0 {
		t.Error("expected the rect to be rendered")
	}
	if out.commitCount != 1 {
		t.Errorf("commitCount = %d, want 1", out.commitCount)
	}
	if out.setDamage == nil {
		t.Error("expected SetDamage to be called with the frame's damage")
	}
}

func TestCommitRendersBufferOnceAndEmitsOncePerCommitUnderSplitDamage(t *testing.T) {
	scene, _, so := newTestScene(100, 100)
	NewRect(scene.Root, 100, 100, [4]float32{0, 0, 0, 1}) // ensures no accidental scan-out
	buf := newFakeBuffer(10, 10)
	n := NewBuffer(scene.Root, buf)
	n.SetPosition(5, 5)

	var presentCount int
	n.OutputPresent.Listen(func(*SceneOutput) { presentCount++ })

	r := &fakeRenderer{}
	so.Commit(time.Unix(0, 0), r, nil) // first frame: settle initial damage

	presentCount = 0
	r.renderTexCalls = 0

	// SetPosition brackets the move with both the old and new boxes,
	// producing a multi-rectangle damage region for this single commit.
	n.SetPosition(20, 20)
	ok := so.Commit(time.Unix(1, 0), r, nil)

	if !ok {
		t.Fatal("Commit should succeed")
	}
	if presentCount != 1 {
		t.Errorf("OutputPresent should fire exactly once per commit, fired %d times", presentCount)
	}
	if r.renderTexCalls != 1 {
		t.Errorf("the buffer should be drawn exactly once when its whole box fits in one damage rectangle, drew %d times", r.renderTexCalls)
	}
}

func TestCommitRollsBackWhenNothingIsDamaged(t *testing.T) {
	scene, out, so := newTestScene(100, 100)
	NewRect(scene.Root, 100, 100, [4]float32{1, 1, 1, 1})

	r := &fakeRenderer{}
	so.Commit(time.Unix(0, 0), r, nil) // first frame clears pending damage

	ok := so.Commit(time.Unix(1, 0), r, nil)
	if !ok {
		t.Fatal("an empty-damage Commit should still report success")
	}
	if out.rollbackCount != 1 {
		t.Errorf("rollbackCount = %d, want 1", out.rollbackCount)
	}
	if out.commitCount != 1 {
		t.Errorf("commitCount should still be 1 from the first frame, got %d", out.commitCount)
	}
}

func TestCommitDebugRerenderForcesFullRedrawEvenWithoutDamage(t *testing.T) {
	scene, _, so := newTestScene(100, 100)
	NewRect(scene.Root, 100, 100, [4]float32{1, 1, 1, 1})

	r := &fakeRenderer{}
	so.Commit(time.Unix(0, 0), r, nil)

	scene.DebugDamage = DebugDamageRerender
	ok := so.Commit(time.Unix(1, 0), r, nil)

	if !ok {
		t.Fatal("Commit should succeed")
	}
	if r.beginCalls != 2 {
		t.Errorf("DebugDamageRerender should force a second render pass, beginCalls = %d", r.beginCalls)
	}
}

func TestCommitHighlightModeNeverScansOutAndOverlaysDamage(t *testing.T) {
	scene, _, so := newTestScene(100, 100)
	scene.DebugDamage = DebugDamageHighlight
	buf := newFakeBuffer(100, 100)
	NewBuffer(scene.Root, buf)

	r := &fakeRenderer{}
	so.Commit(time.Unix(0, 0), r, nil)

	if r.beginCalls == 0 {
		t.Error("highlight mode must never take the scan-out path")
	}
	if len(scene.highlightRegions) == 0 {
		t.Error("expected a captured highlight region after damaging under highlight mode")
	}
	if r.renderRectCalls == 0 {
		t.Error("expected the highlight overlay to be drawn with RenderRect")
	}
}

func TestCommitHighlightRegionsFadeAndExpire(t *testing.T) {
	scene, _, so := newTestScene(100, 100)
	scene.DebugDamage = DebugDamageHighlight
	NewRect(scene.Root, 10, 10, [4]float32{1, 0, 0, 1})

	r := &fakeRenderer{}
	t0 := time.Unix(0, 0)
	so.Commit(t0, r, nil)

	if len(scene.highlightRegions) != 1 {
		t.Fatalf("expected one highlight region, got %d", len(scene.highlightRegions))
	}

	// Well past the fadeout window: the region should be dropped.
	so.Commit(t0.Add(2*highlightFadeout), r, nil)

	if len(scene.highlightRegions) != 0 {
		t.Errorf("expected the expired highlight region to be dropped, got %d remaining", len(scene.highlightRegions))
	}
}

func TestSendFrameDoneOnlyNotifiesPrimaryOutputBuffers(t *testing.T) {
	scene := NewScene()
	a := newFakeOutput(50, 50, 1)
	b := newFakeOutput(50, 50, 1)
	soA := NewSceneOutput(scene, a, a)
	soA.SetPosition(0, 0)
	soB := NewSceneOutput(scene, b, b)
	soB.SetPosition(100, 0)

	onA := NewBuffer(scene.Root, newFakeBuffer(10, 10))
	onA.SetPosition(0, 0)
	onB := NewBuffer(scene.Root, newFakeBuffer(10, 10))
	onB.SetPosition(100, 0)

	var doneA, doneB int
	onA.FrameDone.Listen(func(time.Time) { doneA++ })
	onB.FrameDone.Listen(func(time.Time) { doneB++ })

	soA.SendFrameDone(time.Unix(0, 0))

	if doneA != 1 {
		t.Errorf("buffer on soA should get a frame-done, got %d", doneA)
	}
	if doneB != 0 {
		t.Errorf("buffer on soB should not get a frame-done from soA, got %d", doneB)
	}
}
