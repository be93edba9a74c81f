// Package eigen computes eigendecompositions with a canonical ordering.
//
// Dense eigensolvers return eigenpairs in an arbitrary order. For an
// oscillatory system the raw spectrum typically looks like
//
//	0+89.4j, 0-89.4j, 0+983.2j, 0-983.2j, 0+40.7j, 0-40.7j
//
// and [Sort] rearranges it so the positive branch comes first, in
// ascending frequency, followed by the mirrored negative branch:
//
//	0+40.7j, 0+89.4j, 0+983.2j, 0-983.2j, 0-89.4j, 0-40.7j
//
// Eigenvector columns are permuted together with the eigenvalues, so
// column i always pairs with eigenvalue i. Purely real spectra are
// ordered by real part instead, ascending when every eigenvalue is
// positive and split into positive/negative branches otherwise.
//
// [SortPair] handles the generalized problem A·v = λ·B·v.
package eigen
