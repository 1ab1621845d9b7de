package renderer

import (
	"encoding/json"
	"testing"
)

func TestSegmentKind_JSON(t *testing.T) {
	for _, kind := range []SegmentKind{SegmentPrimary, SegmentReflected, SegmentRefracted, SegmentShadow} {
		data, err := json.Marshal(Segment{Kind: kind})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var seg Segment
		if err := json.Unmarshal(data, &seg); err != nil {
			t.Fatalf("Unmarshal of %s failed: %v", data, err)
		}
		if seg.Kind != kind {
			t.Errorf("Expected %v, got %v", kind, seg.Kind)
		}
	}

	var seg Segment
	if err := json.Unmarshal([]byte(`{"kind": "sideways"}`), &seg); err == nil {
		t.Error("Expected error for an unknown kind")
	}
}
