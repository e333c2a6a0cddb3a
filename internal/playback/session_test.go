package playback_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/walksim/internal/dist"
	"github.com/san-kum/walksim/internal/playback"
	"github.com/san-kum/walksim/internal/walk"
)

// failingSampler fails every draw once armed.
type failingSampler struct {
	fail bool
}

func (s *failingSampler) Sample(dist.Kind) (int, error) {
	if s.fail {
		return 0, errors.New("no entropy")
	}
	return 10, nil
}

func (s *failingSampler) Mean(kind dist.Kind) float64 { return dist.Mean(kind) }

var _ = Describe("Session", func() {
	var (
		ctx     context.Context
		sched   *fakeScheduler
		ctrl    *playback.Controller
		sampler *failingSampler
		session *playback.Session
	)

	BeforeEach(func() {
		ctx = context.Background()
		sched = &fakeScheduler{}
		ctrl = playback.New(playback.WithScheduler(sched))
		sampler = &failingSampler{}
		session = playback.NewSession(walk.NewBuilder(sampler, walk.Cumulative), ctrl, nil)
	})

	It("builds and loads on the first parameter set", func() {
		Expect(session.SetParams(ctx, walk.Params{Kind: dist.Binary, Steps: 3})).To(Succeed())

		traj := ctrl.Trajectory()
		Expect(traj).NotTo(BeNil())
		Expect(traj.Statistics()).To(Equal([]float64{0, 10, 20, 30}))
		Expect(traj.References()).To(Equal([]float64{0, 2.5, 5, 7.5}))
		Expect(ctrl.State().Mode).To(Equal(playback.Idle))
	})

	It("coerces a non-positive step count to 1", func() {
		Expect(session.SetParams(ctx, walk.Params{Kind: dist.Constant, Steps: 0})).To(Succeed())
		Expect(session.Params().Steps).To(Equal(1))
		Expect(ctrl.State().Steps).To(Equal(1))
	})

	It("stops playback and resets to a new trajectory on parameter change", func() {
		Expect(session.SetParams(ctx, walk.Params{Kind: dist.Binary, Steps: 50})).To(Succeed())
		Expect(ctrl.Start()).To(Succeed())
		sched.fire()
		sched.fire()
		stale := sched.pending()[0]
		old := ctrl.Trajectory()

		Expect(session.SetParams(ctx, walk.Params{Kind: dist.Constant, Steps: 8})).To(Succeed())

		Expect(stale.stopped).To(BeTrue())
		stale.f()

		Expect(ctrl.Trajectory()).NotTo(BeIdenticalTo(old))
		Expect(ctrl.State()).To(And(
			HaveField("Cursor", 0),
			HaveField("Steps", 8),
			HaveField("Mode", playback.Idle),
		))
	})

	It("rebuilds in the other presentation mode", func() {
		Expect(session.SetParams(ctx, walk.Params{Kind: dist.Binary, Steps: 3})).To(Succeed())
		Expect(session.SetMode(ctx, walk.Average)).To(Succeed())

		Expect(session.Mode()).To(Equal(walk.Average))
		Expect(ctrl.Trajectory().Statistics()).To(Equal([]float64{2.5, 10, 10, 10}))
		Expect(ctrl.Trajectory().References()).To(Equal([]float64{2.5, 2.5, 2.5, 2.5}))
	})

	It("keeps the previous trajectory, paused, when a rebuild fails", func() {
		Expect(session.SetParams(ctx, walk.Params{Kind: dist.Binary, Steps: 20})).To(Succeed())
		Expect(ctrl.Start()).To(Succeed())
		sched.fire()
		old := ctrl.Trajectory()

		sampler.fail = true
		err := session.SetParams(ctx, walk.Params{Kind: dist.ZetaTwo, Steps: 20})

		Expect(err).To(MatchError(dist.ErrSamplingFailure))
		Expect(ctrl.Trajectory()).To(BeIdenticalTo(old))
		Expect(ctrl.State().Mode).To(Equal(playback.Paused))
		Expect(ctrl.State().Cursor).To(Equal(1))
		Expect(session.Params().Kind).To(Equal(dist.Binary))
		Expect(sched.pending()).To(BeEmpty())
	})

	It("draws a fresh path on regenerate", func() {
		Expect(session.SetParams(ctx, walk.Params{Kind: dist.Constant, Steps: 4})).To(Succeed())
		first := ctrl.Trajectory()
		Expect(session.Regenerate(ctx)).To(Succeed())
		Expect(ctrl.Trajectory()).NotTo(BeIdenticalTo(first))
		Expect(ctrl.Trajectory().Params).To(Equal(first.Params))
	})
})
