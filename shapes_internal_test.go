package washly

import "testing"

type shapeItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestDecodeList_UnwrapsKnownEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"id":"1","name":"a"},{"id":"2","name":"b"}]`, 2},
		{"wrapped", `{"data":[{"id":"1","name":"a"}]}`, 1},
		{"double wrapped", `{"data":{"data":[{"id":"1","name":"a"},{"id":"2","name":"b"},{"id":"3","name":"c"}]}}`, 3},
		{"empty array", `[]`, 0},
		{"wrapped empty", `{"data":[]}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := decodeList[shapeItem]([]byte(tt.raw))
			if len(items) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestDecodeList_UnknownShapesDefaultToEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"object without data", `{"results":[{"id":"1"}]}`},
		{"data not a list", `{"data":"nope"}`},
		{"triple wrapped", `{"data":{"data":{"data":[]}}}`},
		{"scalar", `42`},
		{"null", `null`},
		{"garbage", `{{{`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := decodeList[shapeItem]([]byte(tt.raw))
			if items == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(items) != 0 {
				t.Fatalf("expected empty slice, got %d items", len(items))
			}
		})
	}
}

func TestDecodeObject_ToleratesDataEnvelope(t *testing.T) {
	var direct shapeItem
	if err := decodeObject([]byte(`{"id":"1","name":"a"}`), &direct); err != nil {
		t.Fatalf("direct decode failed: %v", err)
	}
	if direct.ID != "1" {
		t.Fatalf("expected id 1, got %q", direct.ID)
	}

	var wrapped shapeItem
	if err := decodeObject([]byte(`{"data":{"id":"2","name":"b"}}`), &wrapped); err != nil {
		t.Fatalf("wrapped decode failed: %v", err)
	}
	if wrapped.ID != "2" {
		t.Fatalf("expected id 2, got %q", wrapped.ID)
	}
}
