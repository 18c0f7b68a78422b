// Package nativesort binds to an optional, pre-optimized native
// sorting library. The library is a foreign collaborator: it is
// discovered and loaded at runtime, never reimplemented here. Callers
// are expected to probe Available and fall back to the in-process
// engines when it reports false; every entry point returns
// ErrUnavailable in that case.
//
// The library sorts independent rows of a dense matrix, which is why
// the sort facade transposes the sort axis to the last dimension
// before delegating. Sorts are stable: equal elements keep their
// original order, and the permutation reported by ArgSortRows is the
// one a stable sort produces.
package nativesort

import (
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/Masterminds/semver/v3"
	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

// EnvLibrary is the environment variable that overrides the shared
// library path. When unset, the platform's default library name is
// resolved through the system's usual search paths.
const EnvLibrary = "TVM_SORT_LIBRARY"

// minVersion is the oldest native library this binding understands.
const minVersion = "1.0.0"

// ErrUnavailable is returned by every entry point when the native
// library could not be loaded, is missing symbols, or is too old.
var ErrUnavailable = errors.New("native sort library unavailable")

var (
	loadOnce sync.Once
	loadErr  error

	versionFn  func() string
	sortFn     func(data unsafe.Pointer, rows, cols uint64, ascend int32) int32
	argsortFn  func(values, indices unsafe.Pointer, rows, cols uint64, ascend int32) int32
	sortPairFn func(keys, values unsafe.Pointer, n uint64, ascend int32) int32
)

func defaultLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "tvmsort.dll"
	case "darwin":
		return "libtvmsort.dylib"
	}
	return "libtvmsort.so"
}

func load() error {
	path := os.Getenv(EnvLibrary)
	if path == "" {
		path = defaultLibraryName()
	}
	handle, err := loadLibrary(path)
	if err != nil || handle == 0 {
		return errors.WithMessagef(ErrUnavailable, "loading %s", path)
	}
	symbols := []struct {
		name string
		fptr interface{}
	}{
		{"tvmsort_version", &versionFn},
		{"tvmsort_sort_f32", &sortFn},
		{"tvmsort_argsort_f32", &argsortFn},
		{"tvmsort_sort_pairs_f32i32", &sortPairFn},
	}
	for _, sym := range symbols {
		addr, err := getSymbol(handle, sym.name)
		if err != nil || addr == 0 {
			return errors.WithMessagef(ErrUnavailable, "missing symbol %s in %s", sym.name, path)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}
	current, err := semver.NewVersion(versionFn())
	if err != nil {
		return errors.WithMessagef(ErrUnavailable, "unparsable library version %q", versionFn())
	}
	if current.LessThan(semver.MustParse(minVersion)) {
		return errors.WithMessagef(ErrUnavailable, "library version %s older than %s", current, minVersion)
	}
	return nil
}

func ensureLoaded() error {
	loadOnce.Do(func() {
		loadErr = load()
	})
	return loadErr
}

// Available reports whether the native library was found, exposes all
// required symbols, and satisfies the minimum version.
func Available() bool {
	return ensureLoaded() == nil
}

// Version returns the native library's version string.
func Version() (string, error) {
	if err := ensureLoaded(); err != nil {
		return "", err
	}
	return versionFn(), nil
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// SortRows sorts each of the rows rows of data, cols elements long, in
// place.
func SortRows(data []float32, rows, cols int, ascend bool) error {
	if err := ensureLoaded(); err != nil {
		return err
	}
	if len(data) != rows*cols {
		return errors.Errorf("buffer of %d elements for %dx%d rows", len(data), rows, cols)
	}
	if len(data) == 0 {
		return nil
	}
	if status := sortFn(unsafe.Pointer(&data[0]), uint64(rows), uint64(cols), boolToI32(ascend)); status != 0 {
		return errors.Errorf("native sort returned status %d", status)
	}
	return nil
}

// ArgSortRows sorts each row of values in place and writes, for every
// output slot, the original column of the value now residing there
// into the same slot of indices.
func ArgSortRows(values []float32, indices []int32, rows, cols int, ascend bool) error {
	if err := ensureLoaded(); err != nil {
		return err
	}
	if len(values) != rows*cols {
		return errors.Errorf("buffer of %d elements for %dx%d rows", len(values), rows, cols)
	}
	if len(indices) != len(values) {
		return errors.Errorf("index buffer of %d elements for %d values", len(indices), len(values))
	}
	if len(values) == 0 {
		return nil
	}
	status := argsortFn(unsafe.Pointer(&values[0]), unsafe.Pointer(&indices[0]),
		uint64(rows), uint64(cols), boolToI32(ascend))
	if status != 0 {
		return errors.Errorf("native argsort returned status %d", status)
	}
	return nil
}

// StableSortByKey sorts keys in place and applies the same permutation
// to values. Ties between equal keys preserve the input order. No sort
// operator routes here; it is a direct-use entry point for callers
// that already hold a flat key/value pair.
func StableSortByKey(keys []float32, values []int32, ascend bool) error {
	if err := ensureLoaded(); err != nil {
		return err
	}
	if len(keys) != len(values) {
		return errors.Errorf("%d keys for %d values", len(keys), len(values))
	}
	if len(keys) == 0 {
		return nil
	}
	status := sortPairFn(unsafe.Pointer(&keys[0]), unsafe.Pointer(&values[0]),
		uint64(len(keys)), boolToI32(ascend))
	if status != 0 {
		return errors.Errorf("native pair sort returned status %d", status)
	}
	return nil
}
