package list

import (
	"reflect"
	"testing"
)

func TestAppendAndToSlice(t *testing.T) {
	l := New[int]()
	l.Append(1)
	l.Append(2)
	l.Append(3)
	if got := l.ToSlice(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("ToSlice() = %v, want [1 2 3]", got)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
}

func TestPrepend(t *testing.T) {
	l := New[string]()
	l.Append("b")
	l.Prepend("a")
	if got := l.ToSlice(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ToSlice() = %v, want [a b]", got)
	}
}

func TestRemove(t *testing.T) {
	l := New[int]()
	l.Append(1)
	l.Append(2)
	l.Append(3)

	if !l.Remove(2) {
		t.Fatal("Remove(2) should report true")
	}
	if got := l.ToSlice(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("ToSlice() after remove = %v, want [1 3]", got)
	}
	if l.Remove(99) {
		t.Error("Remove(99) should report false for a missing value")
	}

	l.Remove(1)
	l.Remove(3)
	if l.Len() != 0 {
		t.Errorf("Len() = %d after draining list, want 0", l.Len())
	}
	l.Append(42)
	if got := l.ToSlice(); !reflect.DeepEqual(got, []int{42}) {
		t.Errorf("append after drain = %v, want [42]", got)
	}
}

func TestReverse(t *testing.T) {
	l := New[int]()
	for _, v := range []int{1, 2, 3, 4} {
		l.Append(v)
	}
	l.Reverse()
	if got := l.ToSlice(); !reflect.DeepEqual(got, []int{4, 3, 2, 1}) {
		t.Errorf("ToSlice() after reverse = %v, want [4 3 2 1]", got)
	}

	l.Append(0)
	if got := l.ToSlice(); !reflect.DeepEqual(got, []int{4, 3, 2, 1, 0}) {
		t.Errorf("append after reverse = %v, want [4 3 2 1 0]", got)
	}
}

func TestForEachEarlyStop(t *testing.T) {
	l := New[int]()
	for _, v := range []int{1, 2, 3, 4} {
		l.Append(v)
	}
	var seen []int
	l.ForEach(func(v int) bool {
		seen = append(seen, v)
		return v != 2
	})
	if !reflect.DeepEqual(seen, []int{1, 2}) {
		t.Errorf("ForEach stopped at %v, want [1 2]", seen)
	}
}

func TestContains(t *testing.T) {
	l := New[string]()
	l.Append("x")
	l.Append("y")
	if !l.Contains("x") {
		t.Error("Contains(x) should be true")
	}
	if l.Contains("z") {
		t.Error("Contains(z) should be false")
	}
}
