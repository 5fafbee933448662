package quantum_test

import (
	"bytes"
	"errors"
	"math"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qsim/internal/quantum"
)

type recordingObserver struct {
	ops    []quantum.Operation
	resets int
}

func (r *recordingObserver) OnApply(op quantum.Operation, st *quantum.State) {
	r.ops = append(r.ops, op)
}

func (r *recordingObserver) Reset() {
	r.ops = nil
	r.resets++
}

func intp(v int) *int { return &v }

func newSim(n int) *quantum.Simulator {
	GinkgoHelper()
	s, err := quantum.New(n, quantum.WithSeed(42))
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Simulator", func() {
	It("keeps the state normalized for every gate, target and size", func() {
		for n := 1; n <= 3; n++ {
			s := newSim(n)
			for _, g := range quantum.Names() {
				for t := 0; t < n; t++ {
					s.Reset()
					Expect(s.ApplyGate(g, t, nil)).To(Succeed())
					Expect(sum(s.State().Probabilities())).To(BeNumerically("~", 1, tol))
				}
			}
		}
	})

	It("leaves amplitudes unchanged under the identity", func() {
		s := newSim(2)
		Expect(s.ApplyGate("H", 0, nil)).To(Succeed())
		Expect(s.ApplyGate("T", 1, nil)).To(Succeed())
		before := s.State().Amplitudes()

		Expect(s.ApplyGate("I", 1, nil)).To(Succeed())
		expectAmplitudes(s.State().Amplitudes(), before)
	})

	DescribeTable("self-inverse gates restore the previous state",
		func(gate string) {
			s := newSim(3)
			Expect(s.ApplyGate("H", 0, nil)).To(Succeed())
			Expect(s.ApplyGate("S", 1, nil)).To(Succeed())
			Expect(s.ApplyGate("H", 2, nil)).To(Succeed())
			before := s.State().Amplitudes()

			for t := 0; t < 3; t++ {
				Expect(s.ApplyGate(gate, t, nil)).To(Succeed())
				Expect(s.ApplyGate(gate, t, nil)).To(Succeed())
				expectAmplitudes(s.State().Amplitudes(), before)
			}
		},
		Entry("Pauli-X", "X"),
		Entry("Pauli-Y", "Y"),
		Entry("Pauli-Z", "Z"),
		Entry("Hadamard", "H"),
	)

	It("prepares a Bell state with H then CNOT", func() {
		s := newSim(2)
		Expect(s.ApplyGate("H", 0, nil)).To(Succeed())
		Expect(s.ApplyCNOT(0, 1)).To(Succeed())

		r := complex(1/math.Sqrt2, 0)
		expectAmplitudes(s.State().Amplitudes(), []complex128{r, 0, 0, r})

		probs := s.State().Probabilities()
		for i, want := range []float64{0.5, 0, 0, 0.5} {
			Expect(probs[i]).To(BeNumerically("~", want, tol))
		}
	})

	It("applies the controlled bit flip to the same qubit a single-qubit gate would", func() {
		// X on qubit 0 sets bit 0; CNOT(0 -> 2) must then set bit 2: |101⟩ = index 5.
		s := newSim(3)
		Expect(s.ApplyGate("X", 0, nil)).To(Succeed())
		Expect(s.ApplyCNOT(0, 2)).To(Succeed())
		Expect(s.State().Probabilities()[5]).To(BeNumerically("~", 1, tol))
	})

	It("undoes CNOT by applying it twice", func() {
		s := newSim(3)
		Expect(s.ApplyGate("H", 0, nil)).To(Succeed())
		Expect(s.ApplyGate("H", 2, nil)).To(Succeed())
		Expect(s.ApplyGate("T", 2, nil)).To(Succeed())
		before := s.State().Amplitudes()

		for c := 0; c < 3; c++ {
			for t := 0; t < 3; t++ {
				if c == t {
					continue
				}
				Expect(s.ApplyCNOT(c, t)).To(Succeed())
				Expect(s.ApplyCNOT(c, t)).To(Succeed())
				expectAmplitudes(s.State().Amplitudes(), before)
			}
		}
	})

	It("treats a control on ApplyGate as controlled-U", func() {
		s := newSim(2)
		Expect(s.ApplyGate("X", 0, nil)).To(Succeed())
		Expect(s.ApplyGate("X", 1, intp(0))).To(Succeed())
		Expect(s.State().Probabilities()[3]).To(BeNumerically("~", 1, tol))

		Expect(s.ApplyGate("CNOT", 1, intp(0))).To(Succeed())
		Expect(s.State().Probabilities()[1]).To(BeNumerically("~", 1, tol))
	})

	It("applies the named gate under a control rather than a bit flip", func() {
		s := newSim(2)
		Expect(s.ApplyGate("X", 0, nil)).To(Succeed())
		Expect(s.ApplyGate("I", 1, intp(0))).To(Succeed())
		Expect(s.State().Probabilities()).To(HaveLen(4))
		for i, want := range []float64{0, 1, 0, 0} {
			Expect(s.State().Probabilities()[i]).To(BeNumerically("~", want, tol))
		}
		Expect(s.Circuit()).To(HaveLen(2))
		Expect(*s.Circuit()[1].Control).To(Equal(0))
	})

	It("requires a control for CNOT", func() {
		s := newSim(2)
		err := s.ApplyGate("cnot", 1, nil)
		Expect(err).To(MatchError(quantum.ErrInvalidQubit))
		Expect(s.Circuit()).To(BeEmpty())
	})

	It("rejects out-of-range qubits without touching state or log", func() {
		s := newSim(2)
		Expect(s.ApplyGate("H", 0, nil)).To(Succeed())
		before := s.State().Amplitudes()

		var gateErr *quantum.GateError
		err := s.ApplyGate("X", 2, nil)
		Expect(err).To(MatchError(quantum.ErrInvalidQubit))
		Expect(errors.As(err, &gateErr)).To(BeTrue())
		Expect(gateErr.Target).To(Equal(2))

		Expect(s.ApplyCNOT(0, 2)).To(MatchError(quantum.ErrInvalidQubit))
		Expect(s.ApplyCNOT(2, 0)).To(MatchError(quantum.ErrInvalidQubit))
		Expect(s.ApplyCNOT(1, 1)).To(MatchError(quantum.ErrInvalidQubit))

		expectAmplitudes(s.State().Amplitudes(), before)
		Expect(s.Circuit()).To(HaveLen(1))
	})

	It("reports unknown gates", func() {
		s := newSim(1)
		Expect(s.ApplyGate("SWAP", 0, nil)).To(MatchError(quantum.ErrUnknownGate))
	})

	It("logs applied operations in order", func() {
		s := newSim(2)
		Expect(s.ApplyGate("Hadamard (H)", 0, nil)).To(Succeed())
		Expect(s.ApplyCNOT(0, 1)).To(Succeed())

		Expect(s.Circuit()).To(Equal([]quantum.Operation{
			{Gate: "H", Target: 0},
			{Gate: quantum.CNOTName, Target: 1, Control: intp(0)},
		}))
		Expect(s.Circuit()[0].String()).To(Equal("H → Q0"))
		Expect(s.Circuit()[1].String()).To(Equal("CNOT: Q0 → Q1"))
	})

	It("runs a circuit and reports the failing step", func() {
		s := newSim(2)
		err := s.Run([]quantum.Operation{
			{Gate: "H", Target: 0},
			{Gate: "CNOT", Target: 1, Control: intp(0)},
			{Gate: "X", Target: 5},
		})

		var stepErr *quantum.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(2))
		Expect(err).To(MatchError(quantum.ErrInvalidQubit))
		Expect(s.Circuit()).To(HaveLen(2))
	})

	It("samples measurements without collapsing the state", func() {
		s := newSim(2)
		Expect(s.ApplyGate("H", 0, nil)).To(Succeed())
		Expect(s.ApplyCNOT(0, 1)).To(Succeed())
		before := s.State().Amplitudes()

		shots := 100000
		counts, err := s.Counts(shots)
		Expect(err).NotTo(HaveOccurred())
		Expect(counts[0] + counts[3]).To(Equal(shots))
		Expect(float64(counts[0]) / float64(shots)).To(BeNumerically("~", 0.5, 0.02))
		Expect(float64(counts[3]) / float64(shots)).To(BeNumerically("~", 0.5, 0.02))

		expectAmplitudes(s.State().Amplitudes(), before)
	})

	It("validates shot counts", func() {
		s := newSim(1)
		_, err := s.Measure(-5)
		Expect(err).To(MatchError(quantum.ErrInvalidShotCount))

		outcomes, err := s.Measure(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(outcomes).To(BeEmpty())
	})

	It("resets state, log and observers together", func() {
		obs := &recordingObserver{}
		s := newSim(3)
		s.AddObserver(obs)

		Expect(s.ApplyGate("H", 0, nil)).To(Succeed())
		Expect(s.ApplyCNOT(0, 1)).To(Succeed())
		Expect(s.ApplyGate("Y", 2, nil)).To(Succeed())
		Expect(obs.ops).To(HaveLen(3))

		s.Reset()
		Expect(s.State().Probabilities()).To(Equal([]float64{1, 0, 0, 0, 0, 0, 0, 0}))
		Expect(s.Circuit()).To(BeEmpty())
		Expect(obs.ops).To(BeEmpty())
		Expect(obs.resets).To(Equal(1))
	})

	It("rejects invalid register sizes", func() {
		_, err := quantum.New(0)
		Expect(err).To(MatchError(quantum.ErrInvalidQubitCount))
	})

	It("logs gate applications at debug level", func() {
		var buf bytes.Buffer
		logger := log.New(&buf)
		logger.SetLevel(log.DebugLevel)

		s, err := quantum.New(1, quantum.WithLogger(logger), quantum.WithSeed(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.ApplyGate("X", 0, nil)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("gate applied"))
	})
})
