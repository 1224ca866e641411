package blossom

import (
	"fmt"
	"math/rand"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gekko3d/blossom/sculpt/config"
	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/gekko3d/blossom/sculpt/deform"
	"github.com/gekko3d/blossom/sculpt/explosion"
	"github.com/gekko3d/blossom/sculpt/gesture"
	"github.com/gekko3d/blossom/sculpt/shape"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ParticleSystemComponent is one motif of the sculpture: its static
// attributes, the program that deforms them and the per-frame render output.
type ParticleSystemComponent struct {
	ID         uuid.UUID
	Motif      core.Motif
	Order      int // draw order, ascending
	Attributes *core.Attributes
	Program    deform.Program
	Instances  []core.ParticleInstance
}

// SnowfallComponent marks a particle system whose flakes fall on the host.
type SnowfallComponent struct {
	Snowfall shape.Snowfall
}

// Sculpture is the shared animation state of the scene.
type Sculpture struct {
	Target     *explosion.Target
	Tracker    *explosion.Tracker
	Background mgl32.Vec3

	batch  *deform.Batch
	status atomic.Int32
}

// SetExplosionTarget is the control surface of the animation: any goroutine
// may call it, the value is clamped to [0,1] and the latest write wins.
func (s *Sculpture) SetExplosionTarget(v float32) { s.Target.Set(v) }

// Explosion is the smoothed explosion value of the current frame.
func (s *Sculpture) Explosion() float32 { return s.Tracker.Current() }

func (s *Sculpture) GestureStatus() gesture.Status { return gesture.Status(s.status.Load()) }

func (s *Sculpture) SetGestureStatus(st gesture.Status) { s.status.Store(int32(st)) }

type SculptureModule struct {
	Scene *config.Scene
	// Seed of the generators; 0 seeds from the clock.
	Seed int64
}

func (mod SculptureModule) Install(app *App, cmd *Commands) {
	scene := mod.Scene
	if scene == nil {
		s, err := config.Default().Scene()
		if err != nil {
			panic(err)
		}
		scene = s
	}
	seed := mod.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log := app.Logger()

	sculpture := &Sculpture{
		Target:     &explosion.Target{},
		Tracker:    explosion.NewTracker(scene.ExplosionRate),
		Background: scene.Background,
		batch:      deform.NewBatch(),
	}
	sculpture.SetGestureStatus(gesture.StatusUnavailable)

	camera := core.NewOrbitCameraState(scene.CameraPosition, scene.CameraTarget)
	camera.FovDegrees = scene.Fov
	camera.AutoRotateSpeed = scene.AutoRotate

	cmd.AddResources(sculpture, camera)

	for order, motif := range core.Motifs() {
		attrs, program, err := generateMotif(motif, scene, rng)
		if err != nil {
			panic(fmt.Errorf("sculpture: %w", err))
		}
		ps := ParticleSystemComponent{
			ID:         uuid.New(),
			Motif:      motif,
			Order:      order,
			Attributes: attrs,
			Program:    program,
			Instances:  make([]core.ParticleInstance, attrs.Count),
		}
		if motif == core.MotifSnow {
			cmd.AddEntity(ps, SnowfallComponent{Snowfall: shape.NewSnowfall(scene.Snow.BoxSize)})
		} else {
			cmd.AddEntity(ps)
		}
		log.Debugf("generated %s: %d particles (%s)", motif, attrs.Count, ps.ID)
	}
	log.Infof("sculpture ready, seed %d", seed)

	app.UseSystem(
		System(explosionSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(snowfallSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(cameraSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(deformSystem).
			InStage(PreRender).
			InState(OnExecute(StateRunning)),
	)
}

func generateMotif(motif core.Motif, scene *config.Scene, rng *rand.Rand) (*core.Attributes, deform.Program, error) {
	var (
		attrs   *core.Attributes
		program deform.Program
		err     error
	)
	switch motif {
	case core.MotifTree:
		attrs, err = shape.GenerateTree(scene.Counts.Tree, scene.Tree, rng)
		program = deform.TreeProgram{}
	case core.MotifRings:
		attrs, err = shape.GenerateRings(scene.Counts.Rings, scene.Rings, rng)
		program = deform.RingsProgram{}
	case core.MotifSnow:
		attrs, err = shape.GenerateSnow(scene.Counts.Snow, scene.Snow, rng)
		program = deform.SnowProgram{}
	case core.MotifStar:
		attrs, err = shape.GenerateStar(scene.Counts.Star, scene.Star, rng)
		program = deform.StarProgram{Center: scene.StarCenter}
	case core.MotifStarCore:
		attrs, err = shape.GenerateStarCore(scene.Star, rng)
		program = deform.StarCoreProgram{Center: scene.StarCenter}
	case core.MotifWings:
		attrs, err = shape.GenerateWings(scene.Counts.Wings, scene.Wings, rng)
		program = deform.WingsProgram{PivotY: scene.WingPivotY}
	default:
		return nil, nil, fmt.Errorf("unknown motif %v", motif)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := attrs.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", motif, shape.ErrGeometryConfig, err)
	}
	return attrs, program, nil
}

func explosionSystem(t *Time, s *Sculpture) {
	s.Tracker.Step(s.Target.Load(), t.DtSeconds())
}

// snow speeds are per 60Hz frame
const snowTicksPerSecond = 60

func snowfallSystem(t *Time, cmd *Commands) {
	ticks := t.DtSeconds() * snowTicksPerSecond
	if ticks <= 0 {
		return
	}
	MakeQuery2[ParticleSystemComponent, SnowfallComponent](cmd).Map(
		func(_ EntityId, ps *ParticleSystemComponent, snow *SnowfallComponent) bool {
			snow.Snowfall.Step(ps.Attributes, ticks)
			return true
		},
	)
}

func cameraSystem(t *Time, camera *core.OrbitCameraState) {
	camera.Advance(t.DtSeconds())
}

func deformSystem(t *Time, s *Sculpture, camera *core.OrbitCameraState, cmd *Commands) {
	frame := deform.Frame{
		Time:      deform.WrapTime(t.Elapsed),
		Explosion: s.Tracker.Current(),
		View:      camera.GetViewMatrix(),
	}
	MakeQuery1[ParticleSystemComponent](cmd).Map(
		func(_ EntityId, ps *ParticleSystemComponent) bool {
			s.batch.Run(ps.Program, ps.Attributes, frame, ps.Instances)
			return true
		},
	)
}

// ParticleSystems returns every particle system in draw order.
func ParticleSystems(cmd *Commands) []*ParticleSystemComponent {
	var res []*ParticleSystemComponent
	MakeQuery1[ParticleSystemComponent](cmd).Map(
		func(_ EntityId, ps *ParticleSystemComponent) bool {
			res = append(res, ps)
			return true
		},
	)
	slices.SortFunc(res, func(a, b *ParticleSystemComponent) int { return a.Order - b.Order })
	return res
}
