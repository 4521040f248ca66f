/*package stats computes summary statistics for a species' active particles.
It backs pico's "stats" mode and is handy for eyeballing whether a checkpoint
is sane.*/
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/pico/lib/particles"
)

// Summary holds the summary statistics of one species.
type Summary struct {
	Name string
	// Np is the number of active particles.
	Np int
	// TotalWeight is the sum of the active particles' statistical weights.
	TotalWeight float64
	// MeanU and StdU are the per-component mean and standard deviation of
	// the active particles' momenta.
	MeanU, StdU [3]float64
}

// Summarize computes the Summary of a species' active particles. Stale
// slots past s.Np do not contribute.
func Summarize(s *particles.Species) *Summary {
	sum := &Summary{ Name: s.Name, Np: s.Np }

	for _, w := range s.W[:s.Np] {
		sum.TotalWeight += float64(w)
	}

	buf := make([]float64, s.Np)
	u := [3][]float32{ s.Ux, s.Uy, s.Uz }
	for dim := 0; dim < 3; dim++ {
		for i := 0; i < s.Np; i++ {
			buf[i] = float64(u[dim][i])
		}
		sum.MeanU[dim] = stat.Mean(buf, nil)
		sum.StdU[dim] = stat.StdDev(buf, nil)
	}

	return sum
}

func (sum *Summary) String() string {
	return fmt.Sprintf(
		"%s: np = %d, total weight = %.6g\n" +
			"    mean u = (%.6g, %.6g, %.6g)\n" +
			"    std u  = (%.6g, %.6g, %.6g)",
		sum.Name, sum.Np, sum.TotalWeight,
		sum.MeanU[0], sum.MeanU[1], sum.MeanU[2],
		sum.StdU[0], sum.StdU[1], sum.StdU[2],
	)
}
