package expansion

import "github.com/matzehuels/planrep/pkg/graph"

// link holds the neighbours of an element inside the one list that owns it.
type link[T ~int] struct {
	prev, next T
}

// linker resolves the link record of an element. Lists never store their
// members' links themselves, so an element can move between lists in O(1).
type linker[T ~int] func(T) *link[T]

// list is an intrusive doubly linked list of graph handles.
type list[T ~int] struct {
	first, last T
	n           int
}

func (l *list[T]) size() int { return l.n }

func (l *list[T]) pushBack(lk linker[T], x T) { l.insertAfter(lk, x, l.last) }

func (l *list[T]) pushFront(lk linker[T], x T) { l.insertAfter(lk, x, 0) }

// insertAfter links x directly behind pos, or at the front if pos is 0.
func (l *list[T]) insertAfter(lk linker[T], x, pos T) {
	lx := lk(x)
	lx.prev = pos
	if pos == 0 {
		lx.next = l.first
		l.first = x
	} else {
		lp := lk(pos)
		lx.next = lp.next
		lp.next = x
	}
	if lx.next != 0 {
		lk(lx.next).prev = x
	} else {
		l.last = x
	}
	l.n++
}

func (l *list[T]) remove(lk linker[T], x T) {
	lx := lk(x)
	if lx.prev != 0 {
		lk(lx.prev).next = lx.next
	} else {
		l.first = lx.next
	}
	if lx.next != 0 {
		lk(lx.next).prev = lx.prev
	} else {
		l.last = lx.prev
	}
	lx.prev, lx.next = 0, 0
	l.n--
}

func (l *list[T]) items(lk linker[T]) []T {
	out := make([]T, 0, l.n)
	for x := l.first; x != 0; x = lk(x).next {
		out = append(out, x)
	}
	return out
}

func (l *list[T]) succ(lk linker[T], x T) T { return lk(x).next }

// detach empties l without touching the links of its former members.
func (l *list[T]) detach() { *l = list[T]{} }

// splitAt moves x and everything behind it into a new list.
func (l *list[T]) splitAt(lk linker[T], x T) list[T] {
	tail := list[T]{first: x, last: l.last}
	for y := x; y != 0; y = lk(y).next {
		tail.n++
	}
	prev := lk(x).prev
	lk(x).prev = 0
	l.last = prev
	if prev != 0 {
		lk(prev).next = 0
	} else {
		l.first = 0
	}
	l.n -= tail.n
	return tail
}

// concat appends all of other to l and leaves other empty.
func (l *list[T]) concat(lk linker[T], other *list[T]) {
	if other.n == 0 {
		return
	}
	if l.n == 0 {
		*l = *other
	} else {
		lk(l.last).next = other.first
		lk(other.first).prev = l.last
		l.last = other.last
		l.n += other.n
	}
	other.detach()
}

// concatFront prepends all of other to l and leaves other empty.
func (l *list[T]) concatFront(lk linker[T], other *list[T]) {
	if other.n == 0 {
		return
	}
	o := *other
	other.detach()
	o.concat(lk, l)
	*l = o
}

// reverse flips the order of l in place.
func (l *list[T]) reverse(lk linker[T]) {
	for x := l.first; x != 0; {
		lx := lk(x)
		next := lx.next
		lx.prev, lx.next = lx.next, lx.prev
		x = next
	}
	l.first, l.last = l.last, l.first
}

type (
	edgeList = list[graph.Edge]
	nodeList = list[graph.Node]
)
