package search

import (
	"container/heap"
	"sync"
)

// queueItem is a queued node with its precomputed rank. seq breaks rank
// ties in insertion order.
type queueItem struct {
	node *Node
	rank int64
	seq  uint64
}

type nodeHeap []*queueItem

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].rank != h[j].rank {
		return h[i].rank > h[j].rank
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*queueItem)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// worklist is the concurrency-safe priority queue of nodes waiting for
// expansion.
type worklist struct {
	mu   sync.Mutex
	seq  uint64
	heap nodeHeap
}

func newWorklist() *worklist {
	return &worklist{}
}

func (l *worklist) push(n *Node, rank int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	heap.Push(&l.heap, &queueItem{node: n, rank: rank, seq: l.seq})
}

// pushItem requeues a previously popped item with its original rank.
func (l *worklist) pushItem(item *queueItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	item.seq = l.seq
	heap.Push(&l.heap, item)
}

// pop removes and returns the highest-ranked item, or nil when the list is
// empty.
func (l *worklist) pop() *queueItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.heap) == 0 {
		return nil
	}
	return heap.Pop(&l.heap).(*queueItem)
}

func (l *worklist) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.heap)
}
