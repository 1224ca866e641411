package deform

import (
	"runtime"
	"sync"

	"github.com/gekko3d/blossom/sculpt/core"
)

// Batch runs a program over every particle of a system, split across workers.
// Particles are independent so each worker owns a contiguous slice of out.
type Batch struct {
	Workers int
	// MinPerWorker keeps small systems on the calling goroutine.
	MinPerWorker int
}

func NewBatch() *Batch {
	return &Batch{Workers: runtime.NumCPU(), MinPerWorker: 2048}
}

// Run writes one instance per particle into out, which must hold attrs.Count entries.
func (b *Batch) Run(p Program, attrs *core.Attributes, f Frame, out []core.ParticleInstance) {
	n := attrs.Count
	if len(out) < n {
		panic("deform: output buffer smaller than particle count")
	}

	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	if b.MinPerWorker > 0 && n/b.MinPerWorker < workers {
		workers = n / b.MinPerWorker
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			out[i] = p.Apply(i, attrs, f)
		}
		return
	}

	per, rem := n/workers, n%workers
	var wg sync.WaitGroup
	start := 0
	for w := 0; w < workers; w++ {
		count := per
		if w < rem {
			count++
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = p.Apply(i, attrs, f)
			}
		}(start, start+count)
		start += count
	}
	wg.Wait()
}
