package document

import "testing"

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want []Segment
		err  bool
	}{
		{in: "key", want: []Segment{{Key: "key", IsKey: true}}},
		{in: "a.b.c", want: []Segment{
			{Key: "a", IsKey: true}, {Key: "b", IsKey: true}, {Key: "c", IsKey: true},
		}},
		{in: "servers[0].name", want: []Segment{
			{Key: "servers", IsKey: true}, {Index: 0}, {Key: "name", IsKey: true},
		}},
		{in: "grid[1][2]", want: []Segment{
			{Key: "grid", IsKey: true}, {Index: 1}, {Index: 2},
		}},
		{in: "", err: true},
		{in: "a..b", err: true},
		{in: "a[x]", err: true},
		{in: "a[1", err: true},
		{in: "a[-1]", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if tt.err {
				if err == nil {
					t.Fatalf("ParsePath(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("segments = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSetTreeCreatesIntermediates(t *testing.T) {
	segs, err := ParsePath("a.b.c")
	if err != nil {
		t.Fatal(err)
	}
	root, err := setTree(map[string]any{}, segs, 42)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := getTree(root, segs)
	if !ok || v != 42 {
		t.Errorf("value = %v, %v", v, ok)
	}
}

func TestSetTreeRejectsScalarTraversal(t *testing.T) {
	segs, _ := ParsePath("a.b")
	if _, err := setTree(map[string]any{"a": "scalar"}, segs, 1); err == nil {
		t.Error("want error traversing scalar")
	}
}

func TestRemoveTreeMissingNoop(t *testing.T) {
	segs, _ := ParsePath("x.y")
	if _, removed := removeTree(map[string]any{"a": 1}, segs, false); removed {
		t.Error("removed something from absent path")
	}
}

func TestRemoveTreeIndexModes(t *testing.T) {
	segs, _ := ParsePath("items[1]")

	cleared := map[string]any{"items": []any{1, 2, 3}}
	if _, removed := removeTree(cleared, segs, false); !removed {
		t.Fatal("clear mode removed nothing")
	}
	if got := cleared["items"].([]any); len(got) != 3 || got[1] != nil {
		t.Errorf("cleared items = %v", got)
	}

	spliced := map[string]any{"items": []any{1, 2, 3}}
	root, removed := removeTree(spliced, segs, true)
	if !removed {
		t.Fatal("splice mode removed nothing")
	}
	got := root.(map[string]any)["items"].([]any)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("spliced items = %v", got)
	}
}
