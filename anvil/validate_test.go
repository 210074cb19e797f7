package anvil

import (
	"strings"
	"testing"
)

func TestValidateEmptyRegion(t *testing.T) {
	if err := New().Validate(); err != nil {
		t.Errorf("Validate on empty region = %v", err)
	}
}

func TestValidateClean(t *testing.T) {
	r := testRegion()
	for _, c := range []ChunkCoord{{0, 0}, {7, 3}, {31, 31}} {
		if err := r.WriteChunk(c.X, c.Z, testDocument("ok")); err != nil {
			t.Fatalf("WriteChunk(%d,%d): %v", c.X, c.Z, err)
		}
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestValidateOverlap(t *testing.T) {
	r := testRegion()
	if err := r.WriteChunk(0, 0, testDocument("owner")); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	off, cnt := r.location(slotIndex(0, 0))
	entry, err := packLocation(off, cnt)
	if err != nil {
		t.Fatalf("packLocation: %v", err)
	}
	r.setLocation(slotIndex(1, 0), entry)

	verr := r.Validate()
	if verr == nil {
		t.Fatal("Validate = nil for overlapping chunks")
	}
	if !strings.Contains(verr.Error(), "chunk (1,0) overlaps sector 2") {
		t.Errorf("Validate = %q, want overlap report for chunk (1,0)", verr)
	}
}

func TestValidateBadEntries(t *testing.T) {
	r := testRegion()
	r.setLocation(slotIndex(0, 0), 1<<8|1)
	r.setLocation(slotIndex(1, 0), 5<<8)
	r.setLocation(slotIndex(2, 0), 3<<8|200)

	err := r.Validate()
	if err == nil {
		t.Fatal("Validate = nil for a damaged table")
	}
	for _, want := range []string{
		"allocated in the header",
		"zero sector count",
		"runs past the end",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate = %q, missing %q", err, want)
		}
	}
}

func TestValidateAfterRelocation(t *testing.T) {
	r := testRegion()
	if err := r.WriteChunk(0, 0, testDocument("small")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := r.WriteChunk(0, 0, blobDocument(6000)); err != nil {
		t.Fatalf("second write: %v", err)
	}
	// Relocation orphans the old sectors; that is not table damage.
	if err := r.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}
