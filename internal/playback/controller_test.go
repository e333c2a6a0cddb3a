package playback_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/walksim/internal/playback"
)

var _ = Describe("Controller", func() {
	var (
		sched *fakeScheduler
		rec   *recorder
		ctrl  *playback.Controller
	)

	BeforeEach(func() {
		sched = &fakeScheduler{}
		rec = &recorder{}
		ctrl = playback.New(
			playback.WithScheduler(sched),
			playback.WithObserver(rec),
			playback.WithInterval(20*time.Millisecond),
		)
	})

	It("refuses to start before a trajectory is loaded", func() {
		Expect(ctrl.Start()).To(MatchError(playback.ErrNoTrajectory))
		Expect(sched.pending()).To(BeEmpty())
	})

	It("loads a trajectory at Idle with cursor 0", func() {
		ctrl.Load(constantTrajectory(5))

		st := ctrl.State()
		Expect(st.Mode).To(Equal(playback.Idle))
		Expect(st.Cursor).To(Equal(0))
		Expect(st.Steps).To(Equal(5))
		Expect(rec.cursors()).To(Equal([]int{0}))
		Expect(rec.lastFrame().Points).To(HaveLen(1))
	})

	Context("playing to the end", func() {
		const n = 5

		BeforeEach(func() {
			ctrl.Load(constantTrajectory(n))
			Expect(ctrl.Start()).To(Succeed())
		})

		It("reveals every cursor value once and ends Paused", func() {
			for i := 0; i < n; i++ {
				Expect(sched.fire()).To(BeTrue())
			}

			st := ctrl.State()
			Expect(st.Cursor).To(Equal(n))
			Expect(st.Mode).To(Equal(playback.Paused))
			Expect(sched.pending()).To(BeEmpty())

			var distinct []int
			for _, c := range rec.cursors() {
				if len(distinct) == 0 || distinct[len(distinct)-1] != c {
					distinct = append(distinct, c)
				}
			}
			Expect(distinct).To(Equal([]int{0, 1, 2, 3, 4, 5}))

			last := rec.lastFrame()
			Expect(last.Done()).To(BeTrue())
			Expect(last.Points).To(HaveLen(n + 1))
			Expect(last.Points[n].Statistic).To(Equal(5.0))
		})

		It("ignores a further tick at the end", func() {
			for sched.fire() {
			}
			frames := len(rec.cursors())

			sched.last().f()

			Expect(ctrl.State().Cursor).To(Equal(n))
			Expect(ctrl.State().Mode).To(Equal(playback.Paused))
			Expect(rec.cursors()).To(HaveLen(frames))
		})

		It("stays Paused when started again at the end", func() {
			for sched.fire() {
			}
			Expect(ctrl.Start()).To(Succeed())
			Expect(ctrl.State().Mode).To(Equal(playback.Paused))
			Expect(sched.pending()).To(BeEmpty())
		})
	})

	Context("pause and resume", func() {
		BeforeEach(func() {
			ctrl.Load(constantTrajectory(10))
			Expect(ctrl.Start()).To(Succeed())
			sched.fire()
			sched.fire()
		})

		It("cancels the pending tick on pause", func() {
			armed := sched.pending()
			Expect(armed).To(HaveLen(1))

			ctrl.Pause()

			Expect(armed[0].stopped).To(BeTrue())
			Expect(ctrl.State().Mode).To(Equal(playback.Paused))
			Expect(ctrl.State().Cursor).To(Equal(2))

			armed[0].f()
			Expect(ctrl.State().Cursor).To(Equal(2))
		})

		It("resumes from the paused cursor", func() {
			ctrl.Pause()
			Expect(ctrl.Start()).To(Succeed())
			Expect(sched.fire()).To(BeTrue())
			Expect(ctrl.State().Cursor).To(Equal(3))
			Expect(ctrl.State().Mode).To(Equal(playback.Playing))
		})

		It("toggles between playing and paused", func() {
			Expect(ctrl.Toggle()).To(Succeed())
			Expect(ctrl.State().Mode).To(Equal(playback.Paused))
			Expect(ctrl.Toggle()).To(Succeed())
			Expect(ctrl.State().Mode).To(Equal(playback.Playing))
		})

		It("does not re-arm when started while already playing", func() {
			before := sched.pending()
			Expect(ctrl.Start()).To(Succeed())
			Expect(sched.pending()).To(Equal(before))
		})

		It("ignores pause outside Playing", func() {
			ctrl.Pause()
			frames := len(rec.cursors())
			ctrl.Pause()
			Expect(rec.cursors()).To(HaveLen(frames))
		})
	})

	Describe("Reset", func() {
		It("returns to Idle at 0 and drops the pending tick", func() {
			ctrl.Load(constantTrajectory(10))
			Expect(ctrl.Start()).To(Succeed())
			sched.fire()
			sched.fire()
			stale := sched.pending()[0]

			ctrl.Reset()

			Expect(ctrl.State().Cursor).To(Equal(0))
			Expect(ctrl.State().Mode).To(Equal(playback.Idle))
			Expect(stale.stopped).To(BeTrue())

			// a callback already in flight when Reset ran
			stale.f()
			Expect(ctrl.State().Cursor).To(Equal(0))
			Expect(rec.lastFrame().Cursor).To(Equal(0))
		})

		It("works from Idle and Paused", func() {
			ctrl.Load(constantTrajectory(3))
			ctrl.Reset()
			Expect(ctrl.State().Mode).To(Equal(playback.Idle))

			Expect(ctrl.Start()).To(Succeed())
			sched.fire()
			ctrl.Pause()
			ctrl.Reset()
			Expect(ctrl.State()).To(Equal(playback.State{
				Cursor:   0,
				Steps:    3,
				Mode:     playback.Idle,
				Interval: 20 * time.Millisecond,
			}))
		})
	})

	Describe("SetSpeed", func() {
		BeforeEach(func() {
			ctrl.Load(constantTrajectory(10))
		})

		It("rejects non-positive intervals and keeps the current one", func() {
			Expect(ctrl.SetSpeed(0)).To(MatchError(playback.ErrInvalidInterval))
			Expect(ctrl.SetSpeed(-time.Second)).To(MatchError(playback.ErrInvalidInterval))
			Expect(ctrl.State().Interval).To(Equal(20 * time.Millisecond))
		})

		It("applies from the next scheduling decision", func() {
			Expect(ctrl.Start()).To(Succeed())
			armed := sched.pending()[0]
			Expect(armed.d).To(Equal(20 * time.Millisecond))

			Expect(ctrl.SetSpeed(200 * time.Millisecond)).To(Succeed())
			Expect(armed.stopped).To(BeFalse())
			Expect(armed.d).To(Equal(20 * time.Millisecond))

			sched.fire()
			Expect(sched.pending()[0].d).To(Equal(200 * time.Millisecond))
		})
	})

	Describe("Load while playing", func() {
		It("cancels the old timer so it cannot advance the new trajectory", func() {
			ctrl.Load(constantTrajectory(10))
			Expect(ctrl.Start()).To(Succeed())
			sched.fire()
			stale := sched.pending()[0]

			ctrl.Load(constantTrajectory(4))

			Expect(stale.stopped).To(BeTrue())
			stale.f()

			st := ctrl.State()
			Expect(st.Cursor).To(Equal(0))
			Expect(st.Steps).To(Equal(4))
			Expect(st.Mode).To(Equal(playback.Idle))
			Expect(sched.pending()).To(BeEmpty())
		})
	})

	Describe("with the wall clock", func() {
		It("plays a short trajectory to completion", func() {
			rec := &recorder{}
			live := playback.New(
				playback.WithObserver(rec),
				playback.WithInterval(time.Millisecond),
			)
			live.Load(constantTrajectory(20))
			Expect(live.Start()).To(Succeed())

			Eventually(func() playback.Mode { return live.State().Mode }).
				WithTimeout(2 * time.Second).
				Should(Equal(playback.Paused))
			Expect(live.State().Cursor).To(Equal(20))

			seen := map[int]bool{}
			for _, c := range rec.cursors() {
				seen[c] = true
			}
			for i := 0; i <= 20; i++ {
				Expect(seen).To(HaveKey(i))
			}
		})

		It("stays put after Reset even if a tick was due", func() {
			live := playback.New(playback.WithInterval(5 * time.Millisecond))
			live.Load(constantTrajectory(1000))
			Expect(live.Start()).To(Succeed())
			live.Reset()

			Consistently(func() int { return live.State().Cursor }).
				WithTimeout(50 * time.Millisecond).
				Should(Equal(0))
		})
	})
})

var _ = Describe("ClampInterval", func() {
	DescribeTable("coerces milliseconds into bounds",
		func(ms int, want time.Duration) {
			Expect(playback.ClampInterval(ms)).To(Equal(want))
		},
		Entry("negative", -5, time.Millisecond),
		Entry("zero", 0, time.Millisecond),
		Entry("in range", 50, 50*time.Millisecond),
		Entry("upper bound", 1000, time.Second),
		Entry("above", 5000, time.Second),
	)
})
