package tracker

// deltaRing is a fixed-capacity buffer of recent (dx, dy) deltas. Pushing
// past capacity evicts the oldest entry; Average covers whatever is
// currently buffered, including a partial fill at startup. No allocation
// after construction.
type deltaRing struct {
	deltas [][2]float64
	head   int
	count  int
}

func newDeltaRing(capacity int) *deltaRing {
	if capacity < 1 {
		capacity = 1
	}
	return &deltaRing{deltas: make([][2]float64, capacity)}
}

func (r *deltaRing) push(dx, dy float64) {
	r.deltas[r.head] = [2]float64{dx, dy}
	r.head = (r.head + 1) % len(r.deltas)
	if r.count < len(r.deltas) {
		r.count++
	}
}

func (r *deltaRing) average() (float64, float64) {
	if r.count == 0 {
		return 0, 0
	}
	var sx, sy float64
	for i := 0; i < r.count; i++ {
		idx := (r.head - 1 - i + len(r.deltas)) % len(r.deltas)
		sx += r.deltas[idx][0]
		sy += r.deltas[idx][1]
	}
	return sx / float64(r.count), sy / float64(r.count)
}

func (r *deltaRing) clear() {
	r.head = 0
	r.count = 0
}
