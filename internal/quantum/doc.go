// Package quantum implements a small state-vector quantum circuit simulator.
//
// The package is built from a handful of pieces:
//
//   - [Gate] and the fixed gate catalog ([Names], [Lookup])
//   - [State]: the 2^N complex amplitude vector, kept at unit norm
//   - [Expand]: embeds a single-qubit gate into a full-system operator
//   - [BuildControlled] / [BuildCNOT]: two-qubit controlled operators
//   - [Sampler]: draws measurement shots from the state's distribution
//   - [Simulator]: owns a State and the circuit log, routes gate applications
//
// # Bit ordering
//
// Basis index i encodes qubit k in bit k, so qubit 0 is the least-significant
// bit. Both operator builders follow this convention; the ket label of index
// i is written with qubit N-1 leftmost (|q2 q1 q0⟩).
//
// # Example
//
//	s, _ := quantum.New(2)
//	_ = s.ApplyGate("H", 0, nil)
//	_ = s.ApplyCNOT(0, 1)
//	probs := s.State().Probabilities() // [0.5 0 0 0.5]
//	shots, _ := s.Measure(1000)
//
// # Thread Safety
//
// A Simulator is NOT thread-safe. Hosts serving several sessions must give each
// session its own instance.
package quantum
