package nativesort

import (
	"testing"

	"github.com/pkg/errors"
)

// The shared library is not installed in the test environment, so
// every entry point must degrade to ErrUnavailable rather than panic
// or misreport.

func TestUnavailableLibrary(t *testing.T) {
	if Available() {
		t.Skip("native sort library present, degradation paths not reachable")
	}

	if _, err := Version(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Version error = %v, want ErrUnavailable", err)
	}
	if err := SortRows([]float32{2, 1}, 1, 2, true); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SortRows error = %v, want ErrUnavailable", err)
	}
	if err := ArgSortRows([]float32{2, 1}, []int32{0, 0}, 1, 2, true); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ArgSortRows error = %v, want ErrUnavailable", err)
	}
	if err := StableSortByKey([]float32{2, 1}, []int32{0, 1}, true); !errors.Is(err, ErrUnavailable) {
		t.Errorf("StableSortByKey error = %v, want ErrUnavailable", err)
	}
}

func TestAvailableIsStable(t *testing.T) {
	// The load happens once; repeated probes must agree.
	first := Available()
	for i := 0; i < 3; i++ {
		if Available() != first {
			t.Fatal("Available changed between calls")
		}
	}
}

func TestDefaultLibraryName(t *testing.T) {
	if name := defaultLibraryName(); name == "" {
		t.Error("empty default library name")
	}
}
