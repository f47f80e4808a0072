// Package mathkit is the math capability layer: a fixed set of named
// algebraic operations — Add, Sub, Mul, Div, Dot, Outer, ScaledAdd,
// ScaledSub, L1Norm, L2Norm, Inv, Transpose, Eye/EyeLike, ZeroLike, Signum,
// Conj, Min, Max, RandomFromRange, Argsort, Take, Get, Set, Size — each
// implemented once per container kind rather than once per solver.
//
// Every solver in this module is written against these capability names
// only, never against a concrete container type; adding a new backend
// (see the gonumf64 and nativef32 subpackages) means implementing this
// fixed operation set for a new Container[F], nothing else.
//
// Three container kinds satisfy Container[F]: Scalar (a 0-D box), Vector
// (1-D, dense), and Dense (2-D, row-major). A fourth, Complex, pairs a real
// and imaginary Container[F] to support the complex element types named by
// the capability contracts (Conj, Signum).
package mathkit
