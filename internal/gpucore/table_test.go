package gpucore

import "testing"

func TestTableInsertGetRemove(t *testing.T) {
	var tab Table[BufferID, string]

	a := tab.Insert("vertex")
	b := tab.Insert("index")
	if a == InvalidID || b == InvalidID {
		t.Fatal("Insert returned the invalid ID")
	}
	if a == b {
		t.Fatal("Insert returned duplicate IDs")
	}

	if v, ok := tab.Get(a); !ok || v != "vertex" {
		t.Errorf("Get(%d) = %q, %v; want vertex, true", a, v, ok)
	}
	if _, ok := tab.Get(InvalidID); ok {
		t.Error("Get(InvalidID) should miss")
	}

	if v, ok := tab.Remove(a); !ok || v != "vertex" {
		t.Errorf("Remove(%d) = %q, %v", a, v, ok)
	}
	if _, ok := tab.Remove(a); ok {
		t.Error("second Remove should miss")
	}
	if tab.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tab.Len())
	}

	c := tab.Insert("uniform")
	if c == a || c == b {
		t.Errorf("Insert reused ID %d", c)
	}
}

func TestTableEach(t *testing.T) {
	var tab Table[TextureID, int]
	for i := 1; i <= 3; i++ {
		tab.Insert(i * 10)
	}
	sum := 0
	tab.Each(func(_ TextureID, v int) { sum += v })
	if sum != 60 {
		t.Errorf("sum = %d, want 60", sum)
	}
}

func TestNativeHandleIsZero(t *testing.T) {
	if !(NativeHandle{}).IsZero() {
		t.Error("empty handle should be zero")
	}
	if (NativeHandle{Display: 1, Window: 2}).IsZero() {
		t.Error("handle with window should not be zero")
	}
}
