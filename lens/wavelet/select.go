package wavelet

import (
	"math"
	"sort"
)

// Selection weights. Energy concentration dominates because a basis that
// packs the signal into few coefficients separates structure from noise
// best; edge quality gets the smallest weight since it only probes boundary
// artifacts.
const (
	weightEnergyConcentration = 0.30
	weightTimeLocalization    = 0.25
	weightFreqLocalization    = 0.25
	weightEdgeQuality         = 0.20
)

// Score holds the four selection criteria, each in [0, 1], and their
// weighted total.
type Score struct {
	EnergyConcentration   float64
	TimeLocalization      float64
	FrequencyLocalization float64
	EdgeQuality           float64
	Total                 float64
}

// Candidate is one scored basis from the catalogue.
type Candidate struct {
	Wavelet Type
	Score   Score
}

// Selection reports the winning basis score and the full catalogue ranked
// by descending total.
type Selection struct {
	Score        Score
	Alternatives []Candidate
}

// selectBasis transforms the signal with every catalogue basis, scores each,
// and returns the winner with its coefficients. A basis whose transform
// fails scores zero on all criteria instead of aborting the search.
func selectBasis(signal []float64, scales []float64) (Type, [][]complex128, Selection) {
	var (
		bestType   Type
		bestCoeffs [][]complex128
		candidates []Candidate
	)

	bestTotal := math.Inf(-1)
	for _, basis := range Catalogue() {
		var score Score

		coeffs, err := Transform(signal, basis, scales)
		if err == nil {
			score = scoreCoefficients(powerMap(coeffs))
		}

		candidates = append(candidates, Candidate{Wavelet: basis, Score: score})

		if score.Total > bestTotal {
			bestTotal = score.Total
			bestType = basis
			bestCoeffs = coeffs
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score.Total > candidates[j].Score.Total
	})

	return bestType, bestCoeffs, Selection{
		Score:        candidates[0].Score,
		Alternatives: candidates,
	}
}

// scoreCoefficients evaluates the four selection criteria on a
// [scale][time] squared-magnitude map.
func scoreCoefficients(tf [][]float64) Score {
	if len(tf) == 0 || len(tf[0]) == 0 {
		return Score{}
	}

	s := Score{
		EnergyConcentration:   giniCoefficient(tf),
		TimeLocalization:      1 - normalizedEntropy(marginalOverScales(tf)),
		FrequencyLocalization: 1 - normalizedEntropy(marginalOverTime(tf)),
		EdgeQuality:           edgeQuality(tf),
	}

	s.Total = weightEnergyConcentration*s.EnergyConcentration +
		weightTimeLocalization*s.TimeLocalization +
		weightFreqLocalization*s.FrequencyLocalization +
		weightEdgeQuality*s.EdgeQuality

	return s
}

// giniCoefficient measures inequality of the flattened power distribution:
// 1 when all energy sits in a single coefficient, 0 when spread evenly.
func giniCoefficient(tf [][]float64) float64 {
	flat := make([]float64, 0, len(tf)*len(tf[0]))
	total := 0.0
	for _, row := range tf {
		for _, v := range row {
			flat = append(flat, v)
			total += v
		}
	}

	n := len(flat)
	if n < 2 || total <= 0 {
		return 0
	}

	sort.Float64s(flat)

	weighted := 0.0
	for i, v := range flat {
		weighted += float64(2*(i+1)-n-1) * v
	}

	g := weighted / (float64(n) * total)
	if g < 0 {
		return 0
	}
	if g > 1 {
		return 1
	}

	return g
}

// marginalOverScales sums power across scales for each time step.
func marginalOverScales(tf [][]float64) []float64 {
	out := make([]float64, len(tf[0]))
	for _, row := range tf {
		for t, v := range row {
			out[t] += v
		}
	}
	return out
}

// marginalOverTime sums power across time for each scale.
func marginalOverTime(tf [][]float64) []float64 {
	out := make([]float64, len(tf))
	for s, row := range tf {
		for _, v := range row {
			out[s] += v
		}
	}
	return out
}

// normalizedEntropy returns the Shannon entropy of the distribution divided
// by its maximum (log n), yielding a value in [0, 1].
func normalizedEntropy(dist []float64) float64 {
	n := len(dist)
	if n < 2 {
		return 0
	}

	total := 0.0
	for _, v := range dist {
		total += v
	}
	if total <= 0 {
		return 1
	}

	h := 0.0
	for _, v := range dist {
		if v <= 0 {
			continue
		}
		p := v / total
		h -= p * math.Log(p)
	}

	h /= math.Log(float64(n))
	if h < 0 {
		return 0
	}
	if h > 1 {
		return 1
	}

	return h
}

// edgeQuality compares mean power in the outer 10% of the time axis at each
// end against the central 80%: 1/(1+ratio), so boundary-artifact-heavy
// transforms score low.
func edgeQuality(tf [][]float64) float64 {
	nt := len(tf[0])
	edge := nt / 10
	if edge < 1 {
		return 1
	}

	var edgeSum, centerSum float64
	var edgeCount, centerCount int
	for _, row := range tf {
		for t, v := range row {
			if t < edge || t >= nt-edge {
				edgeSum += v
				edgeCount++
			} else {
				centerSum += v
				centerCount++
			}
		}
	}

	if centerCount == 0 || centerSum <= 0 {
		return 0
	}

	centerMean := centerSum / float64(centerCount)
	edgeMean := 0.0
	if edgeCount > 0 {
		edgeMean = edgeSum / float64(edgeCount)
	}

	return 1 / (1 + edgeMean/centerMean)
}
