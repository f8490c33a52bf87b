package mod

import "testing"

func testTable() *Table {
	t := NewTable()
	t.Put("main.exe", 0x400000, 0x10000)
	t.Put("helper.dll", 0x7FF00000, 0x2000)
	return t
}

func TestTableBaseAt(t *testing.T) {
	tbl := testTable()

	tests := []struct {
		addr   uint64
		want   uint64
		wantOK bool
	}{
		{0x400000, 0x400000, true},      // first byte
		{0x40FFFF, 0x400000, true},      // last byte
		{0x410000, 0, false},            // one past the end
		{0x3FFFFF, 0, false},            // below the lowest module
		{0x7FF00000, 0x7FF00000, true},  // second module
		{0x7FF01FFF, 0x7FF00000, true},  // second module last byte
		{0x7FF02000, 0, false},          // past second module
		{0x500000, 0, false},            // gap between modules
	}

	for _, tt := range tests {
		got, ok := tbl.BaseAt(tt.addr)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("BaseAt(%#x) = %#x, %v, want %#x, %v", tt.addr, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTableNameAt(t *testing.T) {
	tbl := testTable()

	if name, ok := tbl.NameAt(0x401234); !ok || name != "main.exe" {
		t.Errorf("NameAt(0x401234) = %q, %v, want %q, true", name, ok, "main.exe")
	}
	if name, ok := tbl.NameAt(0x1000); ok || name != "" {
		t.Errorf("NameAt(0x1000) = %q, %v, want \"\", false", name, ok)
	}
}

func TestTableBaseOfNameCaseInsensitive(t *testing.T) {
	tbl := testTable()

	for _, name := range []string{"helper.dll", "HELPER.DLL", "Helper.Dll"} {
		base, ok := tbl.BaseOfName(name)
		if !ok || base != 0x7FF00000 {
			t.Errorf("BaseOfName(%q) = %#x, %v, want 0x7ff00000, true", name, base, ok)
		}
	}
	if _, ok := tbl.BaseOfName("missing.dll"); ok {
		t.Error("BaseOfName(missing.dll) reported a base")
	}
}

func TestTableHashAt(t *testing.T) {
	tbl := testTable()

	if got, want := tbl.HashAt(0x400000), Hash("main.exe"); got != want {
		t.Errorf("HashAt(0x400000) = %#x, want %#x", got, want)
	}
	// Unknown bases, including 0, hash as the empty name.
	if got, want := tbl.HashAt(0), Hash(""); got != want {
		t.Errorf("HashAt(0) = %#x, want %#x", got, want)
	}
	if got, want := tbl.HashAt(0xDEAD0000), Hash(""); got != want {
		t.Errorf("HashAt(0xdead0000) = %#x, want %#x", got, want)
	}
	if got, want := tbl.HashOfName("MAIN.EXE"), Hash("main.exe"); got != want {
		t.Errorf("HashOfName(MAIN.EXE) = %#x, want %#x", got, want)
	}
}

func TestTableReload(t *testing.T) {
	tbl := testTable()

	// Same image reloaded at a different base, as after a target restart
	// with address space randomization.
	tbl.Put("helper.dll", 0x7EE00000, 0x2000)

	if base, ok := tbl.BaseOfName("helper.dll"); !ok || base != 0x7EE00000 {
		t.Fatalf("BaseOfName(helper.dll) = %#x, %v, want new base", base, ok)
	}
	if _, ok := tbl.BaseAt(0x7FF00100); ok {
		t.Error("old mapping still resolves after reload")
	}
	if got := tbl.Len(); got != 2 {
		t.Errorf("Len() = %d after reload, want 2", got)
	}
}

func TestTableRemove(t *testing.T) {
	tbl := testTable()

	tbl.Remove(0x400000)
	if _, ok := tbl.BaseAt(0x401000); ok {
		t.Error("BaseAt still resolves a removed module")
	}
	if _, ok := tbl.BaseOfName("main.exe"); ok {
		t.Error("BaseOfName still resolves a removed module")
	}

	// Unknown base is a no-op.
	tbl.Remove(0x12345)
	if got := tbl.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestTableBasesOrdered(t *testing.T) {
	tbl := NewTable()
	tbl.Put("c.dll", 0x30000, 0x1000)
	tbl.Put("a.dll", 0x10000, 0x1000)
	tbl.Put("b.dll", 0x20000, 0x1000)

	bases := tbl.Bases()
	want := []uint64{0x10000, 0x20000, 0x30000}
	if len(bases) != len(want) {
		t.Fatalf("Bases() returned %d entries, want %d", len(bases), len(want))
	}
	for i := range want {
		if bases[i] != want[i] {
			t.Errorf("Bases()[%d] = %#x, want %#x", i, bases[i], want[i])
		}
	}
}

func TestTableZeroSizeModule(t *testing.T) {
	tbl := NewTable()
	tbl.Put("stub.dll", 0x1000, 0)

	if _, ok := tbl.BaseAt(0x1000); ok {
		t.Error("zero-size module claims to contain its base")
	}
	if base, ok := tbl.BaseOfName("stub.dll"); !ok || base != 0x1000 {
		t.Errorf("BaseOfName(stub.dll) = %#x, %v, want 0x1000, true", base, ok)
	}
}
