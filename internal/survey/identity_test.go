package survey

import (
	"strings"
	"testing"
)

func TestFileID_Deterministic(t *testing.T) {
	raw := []byte("A B M N\n1 2 3 4\n")
	id1 := FileID(raw)
	id2 := FileID(append([]byte(nil), raw...))
	if id1 != id2 {
		t.Errorf("identical bytes produced different ids: %s vs %s", id1, id2)
	}
}

func TestFileID_Format(t *testing.T) {
	id := FileID([]byte("x"))
	if !strings.HasPrefix(id, FileIDPrefix) {
		t.Errorf("file id %q missing %q prefix", id, FileIDPrefix)
	}
	if len(id) != len(FileIDPrefix)+40 {
		t.Errorf("file id %q has unexpected length %d", id, len(id))
	}
}

func TestFileID_DistinctContent(t *testing.T) {
	if FileID([]byte("a")) == FileID([]byte("b")) {
		t.Error("different bytes produced the same file id")
	}
}
