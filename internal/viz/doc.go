// Package viz renders simulator state in the terminal.
//
// It has three layers:
//
//   - formatting helpers for amplitudes, gate matrices and the circuit log
//   - charts: asciigraph plots and lipgloss probability bars
//   - [App]: an interactive Bubble Tea circuit builder
//
// # Key Bindings
//
//	↑/↓ k/j  - select gate
//	←/→ h/l  - select target qubit
//	c        - toggle controlled mode, tab cycles the control qubit
//	enter    - apply the selected gate
//	r        - reset the register
//	m        - re-sample the measurement histogram
//	+/-      - change the shot count
//	1/2/3    - change the number of qubits (starts a new register)
//	x        - show the selected gate's matrix
//	q        - quit
package viz
