// Package queue provides the bounded FIFO of pending coordinates used by
// breadth-first region traversal.
package queue

// Coord is a circular buffer over parallel row/column arrays; pushes
// never allocate unless the queue is explicitly grown.
type Coord struct {
	rows  []int
	cols  []int
	front int
	rear  int
	size  int
}

// New allocates a queue holding at most capacity pairs.
func New(capacity int) *Coord {
	if capacity < 1 {
		capacity = 1
	}
	return &Coord{
		rows: make([]int, capacity),
		cols: make([]int, capacity),
		rear: capacity - 1,
	}
}

func (q *Coord) Cap() int      { return len(q.rows) }
func (q *Coord) Len() int      { return q.size }
func (q *Coord) IsEmpty() bool { return q.size == 0 }
func (q *Coord) IsFull() bool  { return q.size == len(q.rows) }

// Push appends at the back. It reports false, leaving the queue unchanged,
// when the queue is full.
func (q *Coord) Push(row, col int) bool {
	if q.IsFull() {
		return false
	}
	q.rear = (q.rear + 1) % len(q.rows)
	q.rows[q.rear] = row
	q.cols[q.rear] = col
	q.size++
	return true
}

// Pop removes the front pair. ok is false when the queue is empty.
func (q *Coord) Pop() (row, col int, ok bool) {
	if q.IsEmpty() {
		return 0, 0, false
	}
	row, col = q.rows[q.front], q.cols[q.front]
	q.front = (q.front + 1) % len(q.rows)
	q.size--
	return row, col, true
}

// Grow raises capacity to n, preserving order. Smaller n is ignored.
func (q *Coord) Grow(n int) {
	if n <= len(q.rows) {
		return
	}
	rows := make([]int, n)
	cols := make([]int, n)
	for i := 0; i < q.size; i++ {
		j := (q.front + i) % len(q.rows)
		rows[i] = q.rows[j]
		cols[i] = q.cols[j]
	}
	q.rows, q.cols = rows, cols
	q.front = 0
	q.rear = q.size - 1
	if q.size == 0 {
		q.rear = n - 1
	}
}
