package scene

import (
	"math"
	"time"

	"github.com/achilleasa/go-restir/log"
	"github.com/achilleasa/go-restir/types"
)

const (
	// The BVH builder will not attempt to calculate split candidates
	// if the node bbox along an axis is less than this threshold.
	minSideLength float32 = 1e-3

	// If the split step (calculated as side length / (1024 * depth+1))
	// is less than this threshold the BVH builder will not evaluate
	// split candidates.
	minSplitStep float32 = 1e-5

	// The number of primitives below which the builder always emits a leaf.
	bvhMinLeafItems = 2
)

// Bvh node definition. Inner nodes have Count == 0 and reference their
// children; leaves reference Count items starting at First.
type BvhNode struct {
	Min types.Vec3
	Max types.Vec3

	Left  uint32
	Right uint32

	First uint32
	Count uint32
}

// Returns true if this is a leaf node.
func (n *BvhNode) IsLeaf() bool {
	return n.Count > 0
}

// A bounding volume hierarchy over the bounded scene primitives.
type Bvh struct {
	// Node 0 is the root.
	Nodes []BvhNode

	// Primitives in leaf order.
	Items []*Primitive

	// Build statistics.
	MaxDepth int
	Leafs    int
}

type bvhSplitCandidate struct {
	axis                  int
	splitPoint            float32
	leftCount, rightCount int
	score                 float32
}

type bvhBuilder struct {
	logger log.Logger

	bvh *Bvh

	// The minimum number of items that are required for creating a leaf.
	minLeafItems int

	// Score result chan
	scoreChan chan bvhSplitCandidate
}

// Construct a BVH from a set of bounded primitives.
//
// The builder uses SAH for scoring splits:
// score = num_primitives * node bbox face area.
//
// The minLeafItems param should be used to specified the minimum number of
// items that can form a leaf. The BVH builder will automatically generate leafs
// if the incoming work length is <= minLeafItems.
func BuildBVH(workList []*Primitive, minLeafItems int) *Bvh {
	builder := &bvhBuilder{
		logger:       log.New("bvh builder"),
		bvh:          &Bvh{},
		minLeafItems: minLeafItems,
		scoreChan:    make(chan bvhSplitCandidate),
	}
	if len(workList) == 0 {
		return builder.bvh
	}

	start := time.Now()
	builder.partition(workList, 0)
	builder.logger.Debugf(
		"BVH tree build time: %s, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start), builder.bvh.MaxDepth, len(builder.bvh.Nodes), builder.bvh.Leafs,
	)
	return builder.bvh
}

// Partition worklist and return node index.
func (b *bvhBuilder) partition(workList []*Primitive, depth int) uint32 {
	if depth > b.bvh.MaxDepth {
		b.bvh.MaxDepth = depth
	}

	node := BvhNode{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}

	// Calculate bounding box for node
	for _, item := range workList {
		itemBBox := item.BBox()
		node.Min = types.MinVec3(node.Min, itemBBox[0])
		node.Max = types.MaxVec3(node.Max, itemBBox[1])
	}

	// Do we have enough items for partitioning? If not create a leaf
	if len(workList) <= b.minLeafItems {
		return b.createLeaf(node, workList)
	}

	// Calc current node score
	side := node.Max.Sub(node.Min)
	bestScore := float32(len(workList)) * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
	var bestSplit *bvhSplitCandidate

	// Try partioning along each axis and select the split with best score
	pendingScores := 0

	// Run axis split tests in parallel
	steps := 1024 / (depth + 1)
	for axis := 0; axis < 3; axis++ {
		// Skip axis if bbox dimension is too small
		if side[axis] < minSideLength {
			continue
		}

		// We want the split steps to become more granular the deeper we go
		splitStep := side[axis] / float32(steps)
		if splitStep < minSplitStep {
			continue
		}

		for step := 1; step < steps; step++ {
			candidate := bvhSplitCandidate{
				axis:       axis,
				splitPoint: node.Min[axis] + float32(step)*splitStep,
			}
			pendingScores++
			go candidate.Score(workList, b.scoreChan)
		}
	}

	// Process all scores and pick the best split
	for ; pendingScores > 0; pendingScores-- {
		candidate := <-b.scoreChan
		if candidate.score < bestScore || (candidate.score == bestScore && bestSplit != nil && candidate.before(bestSplit)) {
			bestScore = candidate.score
			bestSplit = &candidate
		}
	}

	// If we can't find a split that improves the current node score create a leaf
	if bestSplit == nil {
		return b.createLeaf(node, workList)
	}

	// split work list into two sets
	leftWorkList := make([]*Primitive, 0, bestSplit.leftCount)
	rightWorkList := make([]*Primitive, 0, bestSplit.rightCount)
	for _, item := range workList {
		if item.Center()[bestSplit.axis] < bestSplit.splitPoint {
			leftWorkList = append(leftWorkList, item)
		} else {
			rightWorkList = append(rightWorkList, item)
		}
	}

	// Add node to list
	nodeIndex := len(b.bvh.Nodes)
	b.bvh.Nodes = append(b.bvh.Nodes, node)

	// Partition children and update node indices
	leftNodeIndex := b.partition(leftWorkList, depth+1)
	rightNodeIndex := b.partition(rightWorkList, depth+1)
	b.bvh.Nodes[nodeIndex].Left = leftNodeIndex
	b.bvh.Nodes[nodeIndex].Right = rightNodeIndex

	return uint32(nodeIndex)
}

// Order candidates with equal scores so the build does not depend on the
// order in which scores arrive.
func (c bvhSplitCandidate) before(other *bvhSplitCandidate) bool {
	if c.axis != other.axis {
		return c.axis < other.axis
	}
	return c.splitPoint < other.splitPoint
}

// Calculate the score for splitting the workList with this split candidate
// and report the result to the supplied channel.
func (c bvhSplitCandidate) Score(workList []*Primitive, resChan chan<- bvhSplitCandidate) {
	lmin := types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	rmin := types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	lmax := types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	rmax := types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}

	for _, item := range workList {
		itemBBox := item.BBox()
		if item.Center()[c.axis] < c.splitPoint {
			c.leftCount++
			lmin = types.MinVec3(lmin, itemBBox[0])
			lmax = types.MaxVec3(lmax, itemBBox[1])
		} else {
			c.rightCount++
			rmin = types.MinVec3(rmin, itemBBox[0])
			rmax = types.MaxVec3(rmax, itemBBox[1])
		}
	}

	// Make sure that we got enough items of each side of the split
	minItemsOnEachSide := 2
	if len(workList) == 2 {
		minItemsOnEachSide = 1
	}
	if c.leftCount < minItemsOnEachSide || c.rightCount < minItemsOnEachSide {
		c.score = math.MaxFloat32
		resChan <- c
		return
	}

	lside := lmax.Sub(lmin)
	rside := rmax.Sub(rmin)
	c.score = (float32(c.leftCount) * (lside[0]*lside[1] + lside[1]*lside[2] + lside[0]*lside[2])) +
		(float32(c.rightCount) * (rside[0]*rside[1] + rside[1]*rside[2] + rside[0]*rside[2]))
	resChan <- c
}

// Setup the given node as a leaf containing all items in the work list.
// Returns the index to the node in the bvh node array.
func (b *bvhBuilder) createLeaf(node BvhNode, workList []*Primitive) uint32 {
	node.First = uint32(len(b.bvh.Items))
	node.Count = uint32(len(workList))
	b.bvh.Items = append(b.bvh.Items, workList...)

	nodeIndex := len(b.bvh.Nodes)
	b.bvh.Nodes = append(b.bvh.Nodes, node)
	b.bvh.Leafs++

	return uint32(nodeIndex)
}

// Find the closest hit with t in (tMin, tMax).
func (b *Bvh) Intersect(origin, dir types.Vec3, tMin, tMax float32) (Hit, bool) {
	var (
		closest Hit
		found   bool
	)
	b.traverse(origin, dir, tMax, func(prim *Primitive, tMax float32) (float32, bool) {
		if hit, ok := prim.Intersect(origin, dir, tMin, tMax); ok {
			closest, found = hit, true
			return hit.T, false
		}
		return tMax, false
	})
	return closest, found
}

// Returns true if any item is hit with t in (tMin, tMax).
func (b *Bvh) AnyHit(origin, dir types.Vec3, tMin, tMax float32) bool {
	var found bool
	b.traverse(origin, dir, tMax, func(prim *Primitive, tMax float32) (float32, bool) {
		_, found = prim.Intersect(origin, dir, tMin, tMax)
		return tMax, found
	})
	return found
}

// Visit the items of all leaves whose boxes overlap the ray segment. The
// visitor returns the updated tMax and whether traversal should stop.
func (b *Bvh) traverse(origin, dir types.Vec3, tMax float32, visit func(*Primitive, float32) (float32, bool)) {
	if len(b.Nodes) == 0 {
		return
	}

	invDir := types.XYZ(1/dir[0], 1/dir[1], 1/dir[2])
	var stack [64]uint32
	stack[0] = 0
	sp := 1
	for sp > 0 {
		sp--
		node := &b.Nodes[stack[sp]]
		if !slabTest(node.Min, node.Max, origin, invDir, tMax) {
			continue
		}

		if node.IsLeaf() {
			for _, prim := range b.Items[node.First : node.First+node.Count] {
				var stop bool
				if tMax, stop = visit(prim, tMax); stop {
					return
				}
			}
			continue
		}

		if sp+2 > len(stack) {
			// Tree is deeper than the stack; fall back to scanning all items
			for _, prim := range b.Items {
				var stop bool
				if tMax, stop = visit(prim, tMax); stop {
					return
				}
			}
			return
		}
		stack[sp] = node.Left
		stack[sp+1] = node.Right
		sp += 2
	}
}

// Returns true if the ray overlaps the box for some t in [0, tMax].
func slabTest(min, max, origin, invDir types.Vec3, tMax float32) bool {
	var tNear float32
	tFar := tMax
	for axis := 0; axis < 3; axis++ {
		t0 := (min[axis] - origin[axis]) * invDir[axis]
		t1 := (max[axis] - origin[axis]) * invDir[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return false
		}
	}
	return true
}
