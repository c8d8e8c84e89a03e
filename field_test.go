package framesmith

import "testing"

func TestFieldByteWidth(t *testing.T) {
	cases := []struct {
		bitWidth, want int
	}{
		{1, 1}, {8, 1}, {9, 2}, {16, 2}, {17, 3}, {48, 6},
	}
	for _, c := range cases {
		f := Field{BitWidth: c.bitWidth}
		if got := f.ByteWidth(); got != c.want {
			t.Errorf("ByteWidth(%d bits) = %d, want %d", c.bitWidth, got, c.want)
		}
	}
}

func TestFieldValuePriority(t *testing.T) {
	f := Field{BitWidth: 8}
	if f.Value() != nil {
		t.Fatal("want nil value before any Set")
	}
	if err := f.SetDef([]byte{0x01}); err != nil {
		t.Fatal(err)
	}
	if got := f.Value(); len(got) != 1 || got[0] != 0x01 {
		t.Errorf("want default value 0x01, got %v", got)
	}
	if err := f.SetVal([]byte{0x02}); err != nil {
		t.Fatal(err)
	}
	if got := f.Value(); len(got) != 1 || got[0] != 0x02 {
		t.Errorf("want explicit value 0x02 to take priority over default, got %v", got)
	}
}

func TestFieldSetValWrongWidth(t *testing.T) {
	f := Field{BitWidth: 16}
	if err := f.SetVal([]byte{0x01}); err == nil {
		t.Fatal("want error assigning a 1-byte value to a 16-bit field")
	}
}

func TestFieldClone(t *testing.T) {
	f := Field{Name: "x", BitWidth: 8, BitOffset: 3}
	f.SetDef([]byte{0xaa})
	f.SetVal([]byte{0xbb})

	c := f.clone()
	c.Val[0] = 0xcc
	if f.Val[0] != 0xbb {
		t.Error("want clone's Val to be independently owned")
	}
	if c.Name != f.Name || c.BitWidth != f.BitWidth || c.BitOffset != f.BitOffset {
		t.Error("want clone to preserve schema fields")
	}
}

func TestFieldRelease(t *testing.T) {
	f := Field{BitWidth: 8}
	f.SetVal([]byte{0x01})
	f.release()
	if f.Val != nil || f.Def != nil {
		t.Error("want release to clear both buffers")
	}
}
