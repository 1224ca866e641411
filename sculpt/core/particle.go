package core

// ParticleInstance matches the WGSL layout in points.wgsl
// struct ParticleInstance { vec3 pos; float size; vec4 color; }
// Size is the point-sprite diameter in pixels, Color.a the vertex alpha.
type ParticleInstance struct {
	Pos   [3]float32
	Size  float32
	Color [4]float32
}

// Motif names one particle system of the sculpture.
type Motif int

const (
	MotifTree Motif = iota
	MotifRings
	MotifSnow
	MotifStar
	MotifWings
	MotifStarCore
)

var motifNames = [...]string{"tree", "rings", "snow", "star", "wings", "star-core"}

func (m Motif) String() string {
	if m < 0 || int(m) >= len(motifNames) {
		return "unknown"
	}
	return motifNames[m]
}

// Motifs lists every motif in draw order.
func Motifs() []Motif {
	return []Motif{MotifRings, MotifWings, MotifTree, MotifStar, MotifStarCore, MotifSnow}
}
