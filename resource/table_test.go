package resource

import (
	"sync"
	"testing"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnResourceEvent(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "buffer")
	if h == 0 {
		t.Fatal("zero handle issued")
	}
	if v, ok := table.Get(h); !ok || v != "buffer" {
		t.Fatalf("Get = %v, %v", v, ok)
	}
	if _, ok := table.GetTyped(h, 1); !ok {
		t.Fatal("GetTyped with the stored type failed")
	}
	if _, ok := table.GetTyped(h, 2); ok {
		t.Fatal("GetTyped with another type succeeded")
	}

	if v, ok := table.Remove(h); !ok || v != "buffer" {
		t.Fatalf("Remove = %v, %v", v, ok)
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("second Remove succeeded")
	}
	if table.Len() != 0 {
		t.Fatalf("Len = %d", table.Len())
	}
}

func TestTable_InvalidHandles(t *testing.T) {
	table := NewTable()
	table.Insert(1, "a")

	for _, h := range []Handle{0, 2, 0x7FFFFFFF, makeHandle(1, 9)} {
		if _, ok := table.Get(h); ok {
			t.Errorf("Get(%v) succeeded", h)
		}
		if _, ok := table.Remove(h); ok {
			t.Errorf("Remove(%v) succeeded", h)
		}
	}
}

func TestTable_StaleHandle(t *testing.T) {
	table := NewTable()

	a := table.Insert(1, "a")
	table.Remove(a)
	b := table.Insert(1, "b")

	if a.index() != b.index() {
		t.Fatalf("slot not reused: %v then %v", a, b)
	}
	if a == b {
		t.Fatal("reused slot issued the same handle")
	}
	if _, ok := table.Get(a); ok {
		t.Fatal("stale handle resolved")
	}
	if _, ok := table.Remove(a); ok {
		t.Fatal("stale handle removed the new value")
	}
	if v, _ := table.Get(b); v != "b" {
		t.Fatalf("Get(new) = %v", v)
	}
}

func TestTable_HighBitFree(t *testing.T) {
	table := NewTable()
	var h Handle
	for i := 0; i < 3000; i++ {
		h = table.Insert(1, i)
		table.Remove(h)
	}
	if h&0x80000000 != 0 {
		t.Fatalf("handle %#x uses bit 31", uint32(h))
	}
	if h == 0 {
		t.Fatal("generation wrap produced handle 0")
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &recorder{}
	table.Subscribe(obs)

	h := table.Insert(3, "listener")
	table.Remove(h)

	if len(obs.events) != 2 {
		t.Fatalf("got %d events", len(obs.events))
	}
	if e := obs.events[0]; e.Type != EventCreated || e.Handle != h || e.TypeID != 3 {
		t.Errorf("created event = %+v", e)
	}
	if e := obs.events[1]; e.Type != EventDropped || e.Value != "listener" {
		t.Errorf("dropped event = %+v", e)
	}
}

func TestTable_ObserverMayReenter(t *testing.T) {
	table := NewTable()
	table.Subscribe(observerFunc(func(e Event) {
		if e.Type == EventCreated {
			table.Len()
			table.Get(e.Handle)
		}
	}))
	if table.Insert(1, "x") == 0 {
		t.Fatal("insert failed")
	}
}

type observerFunc func(Event)

func (f observerFunc) OnResourceEvent(e Event) { f(e) }

func TestTable_ClearDrops(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	table.Insert(1, d)
	table.Insert(1, "b")
	table.Insert(2, "c")
	table.Clear()

	if table.Len() != 0 {
		t.Fatalf("Len = %d after Clear", table.Len())
	}
	if d.count != 1 {
		t.Fatalf("dropped %d times", d.count)
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}
	h := table.Insert(1, d)

	if err := table.Close(); err != nil {
		t.Fatal(err)
	}
	if table.Insert(1, "c") != 0 {
		t.Fatal("Insert after Close succeeded")
	}
	if d.count != 0 {
		t.Fatal("Close dropped a live value")
	}
	if _, ok := table.Get(h); !ok {
		t.Fatal("live value unreachable after Close")
	}
}

func TestTable_EachSnapshot(t *testing.T) {
	table := NewTable()
	for i := 0; i < 5; i++ {
		table.Insert(1, i)
	}

	n := 0
	table.Each(func(h Handle, _ uint32, _ any) bool {
		table.Remove(h)
		n++
		return n < 3
	})
	if n != 3 || table.Len() != 2 {
		t.Fatalf("visited %d, %d left", n, table.Len())
	}
}

func TestTable_Concurrent(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h := table.Insert(1, i)
				if v, ok := table.Get(h); !ok || v != i {
					t.Errorf("Get = %v, %v", v, ok)
					return
				}
				table.Remove(h)
			}
		}()
	}
	wg.Wait()
	if table.Len() != 0 {
		t.Fatalf("Len = %d", table.Len())
	}
}

func TestTyped(t *testing.T) {
	table := NewTable()
	shaders := NewTyped[*dropCounter](table, 7)
	blocks := NewTyped[string](table, 8)

	s := shaders.Insert(&dropCounter{})
	b := blocks.Insert("block")
	if s == b {
		t.Fatal("views issued equal handles")
	}

	if _, ok := shaders.Get(b); ok {
		t.Fatal("view sees another type's handle")
	}
	if _, ok := blocks.Remove(s); ok {
		t.Fatal("view removed another type's handle")
	}
	if shaders.Len() != 1 || blocks.Len() != 1 {
		t.Fatalf("lengths %d/%d", shaders.Len(), blocks.Len())
	}

	var seen []Handle
	shaders.Each(func(h Handle, _ *dropCounter) bool {
		seen = append(seen, h)
		return true
	})
	if len(seen) != 1 || seen[0] != s {
		t.Fatalf("Each visited %v", seen)
	}

	v, ok := shaders.Remove(s)
	if !ok || v.count != 1 {
		t.Fatal("Remove did not drop the value")
	}
}
