package ebitenscene

import (
	"testing"

	"github.com/hearthglass/scenekit"
)

func TestNewOutputRawResolution(t *testing.T) {
	o := NewOutput(320, 240, 1)
	w, h := o.RawResolution()
	if w != 320 || h != 240 {
		t.Errorf("RawResolution = (%d, %d), want (320, 240)", w, h)
	}
}

func TestTransformedResolutionSwapsForRotated(t *testing.T) {
	o := NewOutput(320, 240, 1)
	o.SetMode(320, 240, scenekit.Transform90, 1)

	w, h := o.TransformedResolution()
	if w != 240 || h != 320 {
		t.Errorf("TransformedResolution under Transform90 = (%d, %d), want (240, 320)", w, h)
	}
}

func TestEffectiveResolutionDividesByScale(t *testing.T) {
	o := NewOutput(640, 480, 2)
	w, h := o.EffectiveResolution()
	if w != 320 || h != 240 {
		t.Errorf("EffectiveResolution at scale 2 = (%d, %d), want (320, 240)", w, h)
	}
}

func TestAttachBufferCommitReplacesTarget(t *testing.T) {
	o := NewOutput(4, 4, 1)
	buf := NewBuffer(solidImage(8, 8))

	if !o.AttachBuffer(buf) {
		t.Fatal("AttachBuffer should succeed")
	}
	if !o.Test() {
		t.Fatal("Test should report a staged buffer")
	}
	if !o.Commit() {
		t.Fatal("Commit should succeed")
	}
	w, h := o.Target.Bounds().Dx(), o.Target.Bounds().Dy()
	if w != 8 || h != 8 {
		t.Errorf("Target after Commit = %dx%d, want 8x8 (the scanned-out buffer's size)", w, h)
	}
}

func TestRollbackDiscardsStagedBuffer(t *testing.T) {
	o := NewOutput(4, 4, 1)
	buf := NewBuffer(solidImage(8, 8))
	o.AttachBuffer(buf)
	o.Rollback()
	if o.Test() {
		t.Error("Test should report false after Rollback")
	}
}

func TestDamageAccumulatorAddWholeThenAttachRender(t *testing.T) {
	o := NewOutput(10, 10, 1)
	if !o.Current().Empty() {
		t.Fatal("a fresh output should start with no pending damage")
	}

	o.AddWhole()
	needsFrame, damage, ok := o.AttachRender()
	if !ok || !needsFrame {
		t.Fatal("expected a frame to be needed after AddWhole")
	}
	if damage.Empty() {
		t.Error("expected non-empty damage")
	}

	needsFrame, _, ok = o.AttachRender()
	if !ok || needsFrame {
		t.Error("a second AttachRender with no new damage should report needsFrame=false")
	}
}

func TestOnCommitAndOnModeChangeListeners(t *testing.T) {
	o := NewOutput(10, 10, 1)
	modeChanges := 0
	unsub := o.OnModeChange(func() { modeChanges++ })

	o.SetMode(20, 20, scenekit.TransformNormal, 1)
	if modeChanges != 1 {
		t.Errorf("modeChanges = %d, want 1", modeChanges)
	}

	unsub()
	o.SetMode(30, 30, scenekit.TransformNormal, 1)
	if modeChanges != 1 {
		t.Error("unsubscribed listener should not fire again")
	}
}
