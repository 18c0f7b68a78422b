// Package tvm provides the building blocks of a parallel sort and
// order-statistics engine for dense tensors: sorting the values of an
// N-dimensional array along a chosen axis, optionally together with the
// permutation that produced the order, as needed by sort, argsort and
// top-k operators.
//
// The execution model is a two-level hierarchy: a kernel launch fans out
// over many independently scheduled groups, each covering a bounded
// number of cooperating threads. Groups never share state; the
// completion of a launch is the only synchronization point between
// successive rounds or passes of an algorithm.
//
// tvm provides the following subpackages:
//
// tvm/parallel provides fork-join primitives for executing thunks,
// range functions, range predicates, and range reducers in parallel.
// These are the kernel-launch substrate used by the sorting engines.
//
// tvm/speculative provides early-terminating variants of some of the
// functions from tvm/parallel.
//
// tvm/sequential provides sequential implementations of the functions
// from tvm/parallel, for testing and debugging purposes.
//
// tvm/tensor provides shapes, axis normalization, the axis layout used
// to address independent segments of a tensor, and transpose and slice
// helpers.
//
// tvm/sort provides the sorting engines and the operator facade: a
// full-axis bottom-up merge sort, a bounded per-segment odd-even
// transposition sort driven by a valid-count array, and the top-k
// slicing built on top of them.
//
// tvm/nativesort binds to an optional pre-optimized native sorting
// library; when it is available the sort facade can delegate to it
// instead of the in-process engines.
package tvm
