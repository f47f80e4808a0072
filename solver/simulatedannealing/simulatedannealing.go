package simulatedannealing

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives SimulatedAnnealing. Iter is read off st.Iter so the
// temperature schedule advances in lockstep with the Executor's iteration
// count rather than a private counter.
type Solver[F mathkit.Real] struct {
	Schedule solver.TemperatureSchedule[F]
	Rng      *rand.Rand
}

// New returns a SimulatedAnnealing Solver driven by the given schedule.
func New[F mathkit.Real](schedule solver.TemperatureSchedule[F], rng *rand.Rand) *Solver[F] {
	return &Solver[F]{Schedule: schedule, Rng: rng}
}

func (s *Solver[F]) Name() string { return "SimulatedAnnealing" }

// Init seeds Cost at the starting point.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "simulatedannealing: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithCost(f)
	return out, kv.New().Set("cost", f), nil
}

// NextIter proposes x' = Anneal(x, T) and accepts it per the Metropolis
// criterion; the state only moves to x' on acceptance, but T always
// advances, so rejected proposals still cool the schedule.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	t := s.Schedule.Temperature(st.Iter)
	proposal, err := pw.Anneal(st.Param, t)
	if err != nil {
		return nil, nil, err
	}
	fProposal, err := pw.Cost(proposal)
	if err != nil {
		return nil, nil, err
	}

	delta := float64(fProposal - st.Cost)
	accept := delta <= 0
	prob := 1.0
	if !accept {
		prob = math.Exp(-delta / float64(t))
		accept = s.Rng.Float64() < prob
	}

	if accept {
		out := st.WithParam(proposal).WithCost(fProposal)
		return out, kv.New().Set("cost", fProposal).Set("temperature", t).Set("accepted", true), nil
	}
	out := st.WithCost(st.Cost)
	return out, kv.New().Set("cost", st.Cost).Set("temperature", t).Set("accepted", false), nil
}

// TerminateInternal never fires; the Executor's max_iters/target_cost
// limits govern termination, matching spec.md's annealing loop which has
// no proprietary convergence test of its own.
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	return state.Zero
}
