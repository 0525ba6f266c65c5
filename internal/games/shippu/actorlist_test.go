package shippu

import "testing"

type dummy struct{ id int }

func TestActorListAppendFull(t *testing.T) {
	l := NewActorList[*dummy](2)
	a, b, c := &dummy{1}, &dummy{2}, &dummy{3}

	if !l.Append(a) || !l.Append(b) {
		t.Fatal("Append failed on a list with free slots")
	}
	if l.Append(c) {
		t.Error("Append succeeded on a full list")
	}
	if l.Len() != 2 || l.Contains(c) {
		t.Errorf("full list changed: len %d, contains c %v", l.Len(), l.Contains(c))
	}
}

func TestActorListRemove(t *testing.T) {
	l := NewActorList[*dummy](4)
	a, b := &dummy{1}, &dummy{2}
	l.Append(a)

	if l.Remove(b) {
		t.Error("Remove of an absent actor succeeded")
	}
	if l.Remove(nil) {
		t.Error("Remove of nil succeeded")
	}
	if !l.Remove(a) {
		t.Error("Remove of a present actor failed")
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}

	// The freed slot is reused first.
	l.Append(b)
	l.Append(a)
	var order []*dummy
	for d := range l.All() {
		order = append(order, d)
	}
	if len(order) != 2 || order[0] != b || order[1] != a {
		t.Errorf("slot order = %v, want [b a]", order)
	}
}

func TestActorListLenTracksSlots(t *testing.T) {
	l := NewActorList[*dummy](8)
	ds := make([]*dummy, 10)
	for i := range ds {
		ds[i] = &dummy{i}
	}
	ops := []struct {
		add  bool
		idx  int
		want int
	}{
		{true, 0, 1},
		{true, 1, 2},
		{true, 2, 3},
		{false, 1, 2},
		{false, 1, 2},
		{true, 3, 3},
		{false, 0, 2},
		{false, 9, 2},
	}
	for i, op := range ops {
		if op.add {
			l.Append(ds[op.idx])
		} else {
			l.Remove(ds[op.idx])
		}
		if got := l.Len(); got != op.want {
			t.Errorf("op %d: Len = %d, want %d", i, got, op.want)
		}
	}
}

func TestActorListEachPassSnapshot(t *testing.T) {
	l := NewActorList[*dummy](4)
	a, b, c := &dummy{1}, &dummy{2}, &dummy{3}
	l.Append(a)
	l.Append(b)

	var visited []*dummy
	l.Each(func(d *dummy) {
		visited = append(visited, d)
		if d == a {
			l.Remove(b)
			l.Append(c)
		}
	})

	if len(visited) != 1 || visited[0] != a {
		t.Errorf("visited %v, want only a", visited)
	}
	if !l.Contains(c) {
		t.Error("actor appended during the pass is missing")
	}
}

func TestActorListEachWhileStops(t *testing.T) {
	l := NewActorList[*dummy](4)
	for i := range 4 {
		l.Append(&dummy{i})
	}
	n := 0
	l.EachWhile(func(*dummy) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("visited %d, want 2", n)
	}
}
