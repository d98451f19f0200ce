package world

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/subdive/internal/engine/camera"
	"github.com/Faultbox/subdive/internal/engine/input"
	"github.com/Faultbox/subdive/internal/engine/lighting"
	"github.com/Faultbox/subdive/internal/engine/transform"
	"github.com/Faultbox/subdive/internal/game/entity"
)

const tol = 1e-4

type recorder struct {
	draws    []string
	released map[string]int
}

type fakeMesh struct {
	name string
	rec  *recorder
}

func (m *fakeMesh) Draw() { m.rec.draws = append(m.rec.draws, m.name) }
func (m *fakeMesh) Release() { m.rec.released[m.name]++ }

type fakeTexture struct{}

func (fakeTexture) Bind(uint32) {}

type fakeProgram struct{}

func (fakeProgram) Use() {}
func (fakeProgram) SetInt(string, int32) {}
func (fakeProgram) SetMat4(string, mgl32.Mat4) {}
func (fakeProgram) SetFloat(string, float32) {}
func (fakeProgram) SetVec3(string, mgl32.Vec3) {}

type fakeSkybox struct {
	rec    *recorder
	models []mgl32.Mat4
	views  []mgl32.Mat4
}

func (s *fakeSkybox) Draw(view, _, model mgl32.Mat4) {
	s.rec.draws = append(s.rec.draws, "skybox")
	s.views = append(s.views, view)
	s.models = append(s.models, model)
}

type fixture struct {
	world  *World
	rec    *recorder
	skybox *fakeSkybox
	cams   Cameras
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &recorder{released: map[string]int{}}
	skin := Skin{Diffuse: fakeTexture{}}
	move := transform.DefaultMovement()

	mk := func(name string, typ entity.Type, pos mgl32.Vec3) *entity.Entity {
		return entity.NewEntity(name, typ, &fakeMesh{name: name, rec: rec}, transform.New(pos))
	}

	cams := Cameras{
		FirstPerson:  camera.NewFirstPerson(mgl32.Vec3{0, -1, 5}, camera.DefaultPerspective(1), move),
		ThirdPerson:  camera.NewThirdPerson(camera.DefaultPerspective(1), camera.DefaultRadius, camera.DefaultHeight, camera.DefaultDragFactor),
		Orthographic: camera.NewOrthographic(camera.DefaultBounds(), 100, 0.5),
	}
	sky := &fakeSkybox{rec: rec}

	w, err := New(Params{
		Program: fakeProgram{},
		Skybox:  sky,
		Rig: &lighting.Rig{
			Directional: lighting.NewDirectional(mgl32.Vec3{0, -1, 0}),
			Point:       lighting.NewPoint(mgl32.Vec3{}),
		},
		Cameras:    cams,
		Submarine:  entity.NewSubmarine(mk("sub", entity.TypeSubmarine, mgl32.Vec3{0, -2, 0}), move, 0),
		SubSkin:    Skin{Diffuse: fakeTexture{}, Normal: fakeTexture{}},
		Marker:     entity.NewMarker(mk("marker", entity.TypeMarker, mgl32.Vec3{}), entity.DefaultNearRadius, entity.DefaultFarRadius),
		MarkerSkin: skin,
		Enemies: []Enemy{
			{Entity: mk("enemy-1", entity.TypeEnemy, mgl32.Vec3{10, -5, -10}), Skin: skin},
			{Entity: mk("enemy-2", entity.TypeEnemy, mgl32.Vec3{-10, -5, -10}), Skin: skin},
		},
		SkyboxScales: DefaultSkyboxScales(),
		InitialMode:  ModeFirstPerson,
	})
	require.NoError(t, err)
	return &fixture{world: w, rec: rec, skybox: sky, cams: cams}
}

func TestModeToggleHeldChangesOnce(t *testing.T) {
	f := newFixture(t)

	changes := 0
	for i := 0; i < 100; i++ {
		f.world.Update(input.Press(input.ActionModeToggle))
		for _, ev := range f.world.Events() {
			if ev.Kind == EventModeChanged {
				changes++
			}
		}
		if i == 0 {
			assert.Equal(t, ModeThirdPerson, f.world.Mode(), "mode flips on the first held frame")
		}
	}
	assert.Equal(t, 1, changes)
	assert.Equal(t, ModeThirdPerson, f.world.Mode())
}

func TestModeToggleScenario(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, ModeFirstPerson, f.world.Mode())
	require.Equal(t, float32(50), f.world.SkyboxScale())

	f.world.Update(input.Press(input.ActionModeToggle))
	f.world.Update(input.State{})

	assert.Equal(t, ModeThirdPerson, f.world.Mode())
	assert.Equal(t, float32(100), f.world.SkyboxScale())

	f.world.Update(input.Press(input.ActionModeToggle))
	f.world.Update(input.State{})
	assert.Equal(t, ModeFirstPerson, f.world.Mode())
}

func TestOrthoSelectResnapsWhileHeld(t *testing.T) {
	f := newFixture(t)
	ortho := f.cams.Orthographic

	for i := 0; i < 20; i++ {
		// The camera snaps before controls move the submarine this frame.
		sub := f.world.Submarine().Position()
		f.world.Update(input.Press(input.ActionOrthoSelect, input.ActionForward))
		assert.Equal(t, ModeOrthographic, f.world.Mode())
		assert.True(t, ortho.Target.ApproxEqualThreshold(sub, tol), "frame %d: target %v, sub %v", i, ortho.Target, sub)
		assert.InDelta(t, sub.Y()+ortho.Height, ortho.Pos.Y(), tol)
	}
	assert.Equal(t, float32(250), f.world.SkyboxScale())

	// Released: the mode stays, the camera no longer follows.
	target := ortho.Target
	f.world.Update(input.Press(input.ActionForward))
	assert.Equal(t, ModeOrthographic, f.world.Mode())
	assert.Equal(t, target, ortho.Target)

	// Toggle from orthographic returns to the last perspective mode.
	f.world.Update(input.Press(input.ActionModeToggle))
	assert.Equal(t, ModeFirstPerson, f.world.Mode())
}

func TestOrthoArrowsPanCamera(t *testing.T) {
	f := newFixture(t)
	f.world.Update(input.Press(input.ActionOrthoSelect))
	before := f.cams.Orthographic.Pos

	f.world.Update(input.Press(input.ActionPanRight))
	assert.InDelta(t, before.X()+f.cams.Orthographic.PanStep, f.cams.Orthographic.Pos.X(), tol)
}

func TestControlRoutingByMode(t *testing.T) {
	f := newFixture(t)
	sub := f.world.Submarine()
	fp := f.cams.FirstPerson

	subStart, camStart := sub.Position(), fp.Pos
	f.world.Update(input.Press(input.ActionForward))
	assert.Equal(t, subStart, sub.Position(), "first-person keys move the camera")
	assert.NotEqual(t, camStart, fp.Pos)

	f.world.Update(input.Press(input.ActionModeToggle))
	f.world.Update(input.State{})
	camStart = fp.Pos
	f.world.Update(input.Press(input.ActionForward))
	assert.Equal(t, camStart, fp.Pos, "third-person keys move the submarine")
	assert.NotEqual(t, subStart, sub.Position())

	// The third-person camera keeps orbiting the moved submarine.
	assert.Equal(t, sub.Position(), f.cams.ThirdPerson.Target)
}

func TestOrbitDragScenario(t *testing.T) {
	f := newFixture(t)
	f.world.Update(input.Press(input.ActionModeToggle))
	tp := f.cams.ThirdPerson
	start := tp.Orbit

	drag := func(x float64) input.State { return input.State{Drag: true, CursorX: x} }

	f.world.Update(drag(100))
	assert.Equal(t, start, tp.Orbit)

	f.world.Update(drag(110))
	assert.InDelta(t, start+10*tp.DragFactor, tp.Orbit, tol)

	f.world.Update(drag(95))
	assert.InDelta(t, start-5*tp.DragFactor, tp.Orbit, tol)

	// Release, then a new drag far away does not jump.
	f.world.Update(input.State{})
	orbit := tp.Orbit
	f.world.Update(drag(600))
	assert.Equal(t, orbit, tp.Orbit)
}

func TestDragIgnoredOutsideThirdPerson(t *testing.T) {
	f := newFixture(t)
	start := f.cams.ThirdPerson.Orbit

	f.world.Update(input.State{Drag: true, CursorX: 0})
	f.world.Update(input.State{Drag: true, CursorX: 300})
	assert.Equal(t, start, f.cams.ThirdPerson.Orbit)
}

func TestPointLightRidesAhead(t *testing.T) {
	f := newFixture(t)
	fp := f.cams.FirstPerson

	for i := 0; i < 45; i++ {
		f.world.Update(input.Press(input.ActionRight))
	}
	f.world.Update(input.Press(input.ActionForward))

	light := f.world.Rig().Point.Position
	ahead := fp.Pos.Add(fp.Heading().Mul(entity.DefaultFarRadius))
	assert.True(t, light.ApproxEqualThreshold(ahead, tol), "light %v, want %v", light, ahead)

	marker := f.world.Marker().Position()
	assert.InDelta(t, entity.DefaultNearRadius, marker.Sub(fp.Pos).Len(), tol)
}

func TestCycleLightEvents(t *testing.T) {
	f := newFixture(t)

	var got []float32
	press := input.Press(input.ActionCycleLight)
	for _, s := range []input.State{press, press, press, {}, press, {}} {
		f.world.Update(s)
		for _, ev := range f.world.Events() {
			if ev.Kind == EventLightCycled {
				got = append(got, ev.Intensity)
			}
		}
	}
	assert.Equal(t, []float32{0.55, 0.15}, got)
}

func TestDrawOrder(t *testing.T) {
	f := newFixture(t)

	f.world.Draw()
	assert.Equal(t, []string{"skybox", "enemy-1", "enemy-2", "marker"}, f.rec.draws)

	f.rec.draws = nil
	f.world.Update(input.Press(input.ActionModeToggle))
	f.world.Draw()
	assert.Equal(t, []string{"skybox", "enemy-1", "enemy-2", "sub"}, f.rec.draws)

	f.rec.draws = nil
	f.world.Update(input.Press(input.ActionOrthoSelect))
	f.world.Draw()
	assert.Equal(t, []string{"skybox", "enemy-1", "enemy-2", "sub"}, f.rec.draws)
}

func TestSkyboxModelPerMode(t *testing.T) {
	f := newFixture(t)

	f.world.Draw()
	f.world.Update(input.Press(input.ActionOrthoSelect))
	f.world.Draw()
	require.Len(t, f.skybox.models, 2)

	// First-person: uniform scale, no rotation.
	up := f.skybox.models[0].Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	assert.True(t, up.ApproxEqualThreshold(mgl32.Vec3{0, 50, 0}, tol), "got %v", up)

	// Orthographic: scaled and turned 90 degrees about X.
	up = f.skybox.models[1].Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	assert.True(t, up.ApproxEqualThreshold(mgl32.Vec3{0, 0, 250}, tol), "got %v", up)

	assert.Equal(t, f.cams.Orthographic.ViewMatrix(), f.skybox.views[1], "skybox uses the active camera")
}

func TestCloseReleasesEveryMeshOnce(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, 4, f.world.EntityCount())

	f.world.Close()
	assert.Equal(t, 0, f.world.EntityCount())
	f.world.Close()

	assert.Len(t, f.rec.released, 4)
	for name, n := range f.rec.released {
		assert.Equal(t, 1, n, name)
	}
}

func TestNewRejectsIncompleteScene(t *testing.T) {
	_, err := New(Params{})
	assert.True(t, errors.Is(err, ErrIncompleteScene))
}

func TestModeSwitch(t *testing.T) {
	tests := []struct {
		name   string
		start  Mode
		frames [][2]bool // toggle, ortho
		want   Mode
	}{
		{"idle", ModeFirstPerson, [][2]bool{{false, false}}, ModeFirstPerson},
		{"toggle", ModeFirstPerson, [][2]bool{{true, false}}, ModeThirdPerson},
		{"toggle twice", ModeFirstPerson, [][2]bool{{true, false}, {false, false}, {true, false}}, ModeFirstPerson},
		{"ortho wins", ModeThirdPerson, [][2]bool{{true, true}}, ModeOrthographic},
		{"back from ortho to third", ModeThirdPerson, [][2]bool{{false, true}, {false, false}, {true, false}}, ModeThirdPerson},
		{"start in ortho", ModeOrthographic, [][2]bool{{true, false}}, ModeFirstPerson},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewModeSwitch(tt.start)
			for _, fr := range tt.frames {
				s.Update(fr[0], fr[1])
			}
			assert.Equal(t, tt.want, s.Mode())
		})
	}
}

func TestParseMode(t *testing.T) {
	for m := Mode(0); m < ModeCount; m++ {
		got, ok := ParseMode(m.String())
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ParseMode("isometric")
	assert.False(t, ok)
	assert.Panics(t, func() { DefaultSkyboxScales().For(ModeCount) })
}
