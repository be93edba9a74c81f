// Package response simulates the time-domain free response of undamped
// MDOF systems.
//
// The second-order system M·ẍ + K·x = 0 is rewritten in first-order
// state-space form over the stacked state [x; v],
//
//	A = ⎡ 0      I ⎤
//	    ⎣ −M⁺K   0 ⎦
//
// discretized once through the matrix exponential Ad = expm(A·dt), and
// propagated sample by sample. The system is linear time-invariant, so
// a single exponential serves the whole run.
package response
