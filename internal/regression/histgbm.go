package regression

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

func init() {
	RegisterRegressor("hist_gradient_boosting", NewHistGradientBoosting)
}

// HistGradientBoosting is a histogram-based booster. Feature values
// are quantile-binned once up front, split search scans bin
// boundaries instead of raw values, and trees grow leaf-wise until
// NumLeaves is reached. Thresholds are stored back in raw units so
// prediction walks plain TreeNodes.
type HistGradientBoosting struct {
	NEstimators    int
	LearningRate   float64
	NumLeaves      int
	MaxBins        int
	MinSamplesLeaf int
	Seed           int64

	Init        float64
	Trees       []*TreeNode
	NumFeatures int
}

// NewHistGradientBoosting builds an unfitted booster from
// hyperparameters, rejecting unknown keys and out-of-range values.
func NewHistGradientBoosting(hp Hyperparams) (Regressor, error) {
	if err := hp.Validate("n_estimators", "learning_rate", "num_leaves", "max_bins", "min_samples_leaf", "seed"); err != nil {
		return nil, err
	}
	h := &HistGradientBoosting{
		NEstimators:    hp.Int("n_estimators", 100),
		LearningRate:   hp.Float("learning_rate", 0.1),
		NumLeaves:      hp.Int("num_leaves", 31),
		MaxBins:        hp.Int("max_bins", 255),
		MinSamplesLeaf: hp.Int("min_samples_leaf", 20),
		Seed:           hp.Int64("seed", 0),
	}
	if h.NEstimators < 1 {
		return nil, fmt.Errorf("n_estimators must be positive, got %d", h.NEstimators)
	}
	if h.LearningRate <= 0 {
		return nil, fmt.Errorf("learning_rate must be positive, got %v", h.LearningRate)
	}
	if h.NumLeaves < 2 {
		return nil, fmt.Errorf("num_leaves must be at least 2, got %d", h.NumLeaves)
	}
	if h.MaxBins < 2 {
		return nil, fmt.Errorf("max_bins must be at least 2, got %d", h.MaxBins)
	}
	if h.MinSamplesLeaf < 1 {
		return nil, fmt.Errorf("min_samples_leaf must be positive, got %d", h.MinSamplesLeaf)
	}
	return h, nil
}

// Name implements Regressor.
func (h *HistGradientBoosting) Name() string { return "hist_gradient_boosting" }

// Fit implements Regressor.
func (h *HistGradientBoosting) Fit(X *mat.Dense, y []float64) error {
	numRows, numFeatures, err := checkTrainingSet(X, y)
	if err != nil {
		return err
	}
	rows := matrixRows(X)
	h.NumFeatures = numFeatures

	edges := make([][]float64, numFeatures)
	column := make([]float64, numRows)
	for f := 0; f < numFeatures; f++ {
		for i, row := range rows {
			column[i] = row[f]
		}
		edges[f] = computeBinEdges(column, h.MaxBins)
	}

	binned := make([][]int, numRows)
	for i, row := range rows {
		binned[i] = make([]int, numFeatures)
		for f, v := range row {
			binned[i][f] = sort.SearchFloat64s(edges[f], v)
		}
	}

	sum := 0.0
	for _, v := range y {
		sum += v
	}
	h.Init = sum / float64(numRows)

	current := make([]float64, numRows)
	for i := range current {
		current[i] = h.Init
	}
	residual := make([]float64, numRows)

	grower := &histGrower{
		binned:         binned,
		edges:          edges,
		target:         residual,
		minSamplesLeaf: h.MinSamplesLeaf,
		numLeaves:      h.NumLeaves,
	}

	allSamples := make([]int, numRows)
	for i := range allSamples {
		allSamples[i] = i
	}

	h.Trees = make([]*TreeNode, h.NEstimators)
	for t := 0; t < h.NEstimators; t++ {
		for i := range residual {
			residual[i] = y[i] - current[i]
		}

		tree := grower.grow(allSamples)
		h.Trees[t] = tree

		for i, row := range rows {
			current[i] += h.LearningRate * tree.predictRow(row)
		}
	}
	return nil
}

// Predict implements Regressor.
func (h *HistGradientBoosting) Predict(X *mat.Dense) ([]float64, error) {
	if len(h.Trees) == 0 {
		return nil, fmt.Errorf("model has not been fitted")
	}
	if _, err := checkPredictSet(X, h.NumFeatures); err != nil {
		return nil, err
	}
	rows := matrixRows(X)
	out := make([]float64, len(rows))
	for i, row := range rows {
		pred := h.Init
		for _, tree := range h.Trees {
			pred += h.LearningRate * tree.predictRow(row)
		}
		out[i] = pred
	}
	return out, nil
}

// computeBinEdges returns ascending thresholds between quantiles of
// the distinct values, at most maxBins-1 of them. A bin index found
// by sort.SearchFloat64s is <= k exactly when the value is <=
// edges[k], so a bin split maps back to a raw-unit threshold.
func computeBinEdges(values []float64, maxBins int) []float64 {
	distinct := append([]float64(nil), values...)
	sort.Float64s(distinct)
	m := 0
	for i, v := range distinct {
		if i == 0 || v != distinct[m-1] {
			distinct[m] = v
			m++
		}
	}
	distinct = distinct[:m]

	if m <= 1 {
		return nil
	}
	if m <= maxBins {
		edges := make([]float64, m-1)
		for i := range edges {
			edges[i] = (distinct[i] + distinct[i+1]) / 2
		}
		return edges
	}
	edges := make([]float64, 0, maxBins-1)
	for k := 1; k < maxBins; k++ {
		pos := k * m / maxBins
		e := (distinct[pos-1] + distinct[pos]) / 2
		if len(edges) == 0 || e > edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	return edges
}

type histSplit struct {
	gain    float64
	feature int
	bin     int
}

type histLeaf struct {
	node    *TreeNode
	samples []int
	split   histSplit
}

// histGrower grows one leaf-wise tree per call over pre-binned rows.
type histGrower struct {
	binned         [][]int
	edges          [][]float64
	target         []float64
	minSamplesLeaf int
	numLeaves      int
}

// grow builds a tree by repeatedly splitting whichever current leaf
// offers the largest gain, until numLeaves is reached or no split
// clears the gain floor.
func (g *histGrower) grow(samples []int) *TreeNode {
	root := &TreeNode{Value: g.mean(samples), IsLeaf: true}
	leaves := []*histLeaf{{node: root, samples: samples, split: g.bestSplit(samples)}}

	for len(leaves) < g.numLeaves {
		best := -1
		for i, lf := range leaves {
			if lf.split.gain > minSplitGain && (best == -1 || lf.split.gain > leaves[best].split.gain) {
				best = i
			}
		}
		if best == -1 {
			break
		}

		lf := leaves[best]
		f, bin := lf.split.feature, lf.split.bin
		var left, right []int
		for _, i := range lf.samples {
			if g.binned[i][f] <= bin {
				left = append(left, i)
			} else {
				right = append(right, i)
			}
		}

		lf.node.Feature = f
		lf.node.Threshold = g.edges[f][bin]
		lf.node.IsLeaf = false
		lf.node.Left = &TreeNode{Value: g.mean(left), IsLeaf: true}
		lf.node.Right = &TreeNode{Value: g.mean(right), IsLeaf: true}

		leaves[best] = &histLeaf{node: lf.node.Left, samples: left, split: g.bestSplit(left)}
		leaves = append(leaves, &histLeaf{node: lf.node.Right, samples: right, split: g.bestSplit(right)})
	}
	return root
}

// bestSplit scans per-feature histograms for the bin boundary with
// the largest sum-of-squares reduction.
func (g *histGrower) bestSplit(samples []int) histSplit {
	total := 0.0
	for _, i := range samples {
		total += g.target[i]
	}
	nTotal := len(samples)

	var best histSplit
	for f, featureEdges := range g.edges {
		if len(featureEdges) == 0 {
			continue
		}
		nbins := len(featureEdges) + 1
		sums := make([]float64, nbins)
		counts := make([]int, nbins)
		for _, i := range samples {
			b := g.binned[i][f]
			sums[b] += g.target[i]
			counts[b]++
		}

		leftSum, leftCount := 0.0, 0
		for k := 0; k < nbins-1; k++ {
			leftSum += sums[k]
			leftCount += counts[k]
			rightCount := nTotal - leftCount
			if leftCount < g.minSamplesLeaf || rightCount < g.minSamplesLeaf {
				continue
			}
			rightSum := total - leftSum
			gain := leftSum*leftSum/float64(leftCount) +
				rightSum*rightSum/float64(rightCount) -
				total*total/float64(nTotal)
			if gain > best.gain {
				best = histSplit{gain: gain, feature: f, bin: k}
			}
		}
	}
	return best
}

func (g *histGrower) mean(samples []int) float64 {
	sum := 0.0
	for _, i := range samples {
		sum += g.target[i]
	}
	return sum / float64(len(samples))
}
