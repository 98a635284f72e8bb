package regression

import (
	"math/rand"
	"sort"
)

// minSplitGain is the smallest sum-of-squares reduction worth splitting
// on; anything below it is numerical noise.
const minSplitGain = 1e-12

// TreeNode is one node of a fitted regression tree. Leaves carry the
// predicted value; internal nodes route on feature <= threshold.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Value     float64
	IsLeaf    bool
}

// predictRow walks the tree for a single feature vector.
func (n *TreeNode) predictRow(row []float64) float64 {
	node := n
	for !node.IsLeaf {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// depth returns the length of the longest root-to-leaf path, with a
// lone leaf at depth 0.
func (n *TreeNode) depth() int {
	if n.IsLeaf {
		return 0
	}
	left, right := n.Left.depth(), n.Right.depth()
	if left > right {
		return left + 1
	}
	return right + 1
}

// leafCount returns the number of leaves under the node.
func (n *TreeNode) leafCount() int {
	if n.IsLeaf {
		return 1
	}
	return n.Left.leafCount() + n.Right.leafCount()
}

// treeBuilder grows depth-wise CART regression trees by exhaustive
// variance-reduction split search.
type treeBuilder struct {
	rows           [][]float64
	target         []float64
	maxDepth       int // depth limit; a lone root counts as depth 0
	minSamplesLeaf int
	maxFeatures    int // features considered per split; 0 means all
	rng            *rand.Rand
}

// build grows a tree over the given sample indices.
func (b *treeBuilder) build(samples []int, depth int) *TreeNode {
	sum, sumSq := 0.0, 0.0
	for _, i := range samples {
		sum += b.target[i]
		sumSq += b.target[i] * b.target[i]
	}
	n := float64(len(samples))
	mean := sum / n
	sse := sumSq - sum*sum/n

	leaf := func() *TreeNode {
		return &TreeNode{Value: mean, IsLeaf: true}
	}

	if depth >= b.maxDepth || len(samples) < 2*b.minSamplesLeaf || sse <= minSplitGain {
		return leaf()
	}

	feature, threshold, gain := b.bestSplit(samples, sse)
	if gain <= minSplitGain {
		return leaf()
	}

	var left, right []int
	for _, i := range samples {
		if b.rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
		Value:     mean,
	}
}

// bestSplit searches candidate features for the threshold that most
// reduces the summed squared error of the two sides.
func (b *treeBuilder) bestSplit(samples []int, parentSSE float64) (feature int, threshold, gain float64) {
	numFeatures := len(b.rows[0])
	candidates := b.candidateFeatures(numFeatures)

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0

	order := make([]int, len(samples))
	for _, f := range candidates {
		copy(order, samples)
		sort.Slice(order, func(a, c int) bool {
			return b.rows[order[a]][f] < b.rows[order[c]][f]
		})

		totalSum := 0.0
		for _, i := range order {
			totalSum += b.target[i]
		}

		leftSum, leftSumSq := 0.0, 0.0
		rightSumSq := 0.0
		for _, i := range order {
			rightSumSq += b.target[i] * b.target[i]
		}

		n := len(order)
		for k := 0; k < n-1; k++ {
			i := order[k]
			v := b.target[i]
			leftSum += v
			leftSumSq += v * v
			rightSumSq -= v * v

			// No threshold separates equal feature values
			if b.rows[i][f] == b.rows[order[k+1]][f] {
				continue
			}

			nLeft, nRight := k+1, n-k-1
			if nLeft < b.minSamplesLeaf || nRight < b.minSamplesLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			leftSSE := leftSumSq - leftSum*leftSum/float64(nLeft)
			rightSSE := rightSumSq - rightSum*rightSum/float64(nRight)

			if g := parentSSE - leftSSE - rightSSE; g > bestGain {
				bestGain = g
				bestFeature = f
				bestThreshold = (b.rows[i][f] + b.rows[order[k+1]][f]) / 2
			}
		}
	}

	if bestFeature == -1 {
		return 0, 0, 0
	}
	return bestFeature, bestThreshold, bestGain
}

// candidateFeatures picks the feature subset considered for one split.
func (b *treeBuilder) candidateFeatures(numFeatures int) []int {
	if b.maxFeatures <= 0 || b.maxFeatures >= numFeatures || b.rng == nil {
		all := make([]int, numFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return b.rng.Perm(numFeatures)[:b.maxFeatures]
}
