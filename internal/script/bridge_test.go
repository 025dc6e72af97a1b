package script

import (
	"reflect"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestBridgeToLuaAndBack(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	b := NewBridge(L)

	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{true, true},
		{3, int64(3)},
		{uint8(4), int64(4)},
		{1.5, 1.5},
		{"s", "s"},
		{[]string{"a", "b"}, []any{"a", "b"}},
		{[]int{1, 2}, []any{int64(1), int64(2)}},
		{map[string]any{"k": "v"}, map[string]any{"k": "v"}},
		{map[string]int{"n": 1}, map[string]any{"n": int64(1)}},
	}
	for _, tt := range tests {
		got := b.ToGoValue(b.ToLuaValue(tt.in))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("round trip of %#v = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestBridgeCyclicTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(`t = {name = "loop"}; t.self = t`); err != nil {
		t.Fatal(err)
	}
	got := NewBridge(L).ToGoValue(L.GetGlobal("t"))
	want := map[string]any{"name": "loop", "self": nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToGoValue() = %#v, want %#v", got, want)
	}
}

func TestBridgeUserData(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	b := NewBridge(L)

	type point struct{ X, Y int }
	lv := b.ToLuaValue(point{1, 2})
	if lv.Type() != lua.LTUserData {
		t.Fatalf("ToLuaValue(struct) type = %v, want userdata", lv.Type())
	}
	if got := b.ToGoValue(lv); got != (point{1, 2}) {
		t.Errorf("ToGoValue() = %#v", got)
	}
}
