package vm

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

// beladySequence is a classic input for which FIFO with 3 frames faults 9
// times.
var beladySequence = []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

func mustBuild(b Builder, name string) *Engine {
	e, err := b.Build(name)
	Expect(err).ToNot(HaveOccurred())
	return e
}

func replay(e *Engine, refs []int) {
	for _, page := range refs {
		Expect(e.Access(page)).To(Succeed())
	}
}

var _ = Describe("Engine", func() {
	Context("construction", func() {
		It("should reject a negative page count", func() {
			_, err := MakeBuilder().
				WithPageCount(-1).
				WithFrameCount(3).
				Build("Engine")
			Expect(err).To(HaveOccurred())
		})

		It("should reject a negative frame count", func() {
			_, err := MakeBuilder().
				WithPageCount(3).
				WithFrameCount(-1).
				Build("Engine")
			Expect(err).To(HaveOccurred())
		})

		It("should reject an unknown algorithm", func() {
			_, err := MakeBuilder().
				WithPageCount(3).
				WithFrameCount(3).
				WithAlgorithm(ReplacementAlgorithm(99)).
				Build("Engine")
			Expect(err).To(HaveOccurred())
		})

		It("should describe the configuration when verbose", func() {
			buf := bytes.NewBuffer(nil)

			mustBuild(MakeBuilder().
				WithPageCount(8).
				WithFrameCount(3).
				WithAlgorithm(LRU).
				WithVerbose(true).
				WithLogger(log.New(buf, "", 0)),
				"Engine")

			Expect(buf.String()).To(Equal(
				"Created page_table{page_count=8, frame_count=3, " +
					"replacement_algorithm=LRU}\n"))
		})

		It("should stay silent when not verbose", func() {
			buf := bytes.NewBuffer(nil)

			mustBuild(MakeBuilder().
				WithPageCount(8).
				WithFrameCount(3).
				WithLogger(log.New(buf, "", 0)),
				"Engine")

			Expect(buf.String()).To(BeEmpty())
		})
	})

	Context("access validation", func() {
		var engine *Engine

		BeforeEach(func() {
			engine = mustBuild(MakeBuilder().
				WithPageCount(4).
				WithFrameCount(2),
				"Engine")
		})

		It("should reject an out-of-range page without mutating state", func() {
			Expect(engine.Access(4)).ToNot(Succeed())
			Expect(engine.Access(-1)).ToNot(Succeed())

			Expect(engine.FaultCount()).To(Equal(uint64(0)))
			engine.PageTable().CheckIntegrity()
		})
	})

	Context("FIFO replacement", func() {
		var engine *Engine

		BeforeEach(func() {
			engine = mustBuild(MakeBuilder().
				WithPageCount(6).
				WithFrameCount(3).
				WithAlgorithm(FIFO),
				"Engine")
		})

		It("should fault once per first reference until frames fill", func() {
			replay(engine, []int{1, 2, 3})

			Expect(engine.FaultCount()).To(Equal(uint64(3)))

			for frame, page := range map[int]int{0: 1, 1: 2, 2: 3} {
				occupant, occupied := engine.PageTable().OccupantOf(frame)
				Expect(occupied).To(BeTrue())
				Expect(occupant).To(Equal(page))
			}
		})

		It("should evict in strict load order", func() {
			replay(engine, []int{1, 2, 3, 4})

			Expect(engine.FaultCount()).To(Equal(uint64(4)))

			_, resident := engine.PageTable().FrameOf(1)
			Expect(resident).To(BeFalse())

			occupant, _ := engine.PageTable().OccupantOf(0)
			Expect(occupant).To(Equal(4))
		})

		It("should fault 9 times on the Belady sequence", func() {
			replay(engine, beladySequence)

			Expect(engine.FaultCount()).To(Equal(uint64(9)))

			for frame, page := range map[int]int{0: 5, 1: 3, 2: 4} {
				occupant, occupied := engine.PageTable().OccupantOf(frame)
				Expect(occupied).To(BeTrue())
				Expect(occupant).To(Equal(page))
			}
		})

		It("should keep the evicted page's last frame number", func() {
			replay(engine, []int{1, 2, 3, 4})

			page := engine.PageTable().Page(1)
			Expect(page.Valid).To(BeFalse())
			Expect(page.Frame).To(Equal(0))
		})
	})

	Context("LRU replacement", func() {
		var engine *Engine

		BeforeEach(func() {
			engine = mustBuild(MakeBuilder().
				WithPageCount(4).
				WithFrameCount(2).
				WithAlgorithm(LRU),
				"Engine")
		})

		It("should evict the frame with the smallest access count", func() {
			// Page 1 is touched twice, page 2 once, so page 2 is the
			// victim when page 3 arrives.
			replay(engine, []int{1, 2, 1, 3})

			Expect(engine.FaultCount()).To(Equal(uint64(3)))

			_, resident := engine.PageTable().FrameOf(2)
			Expect(resident).To(BeFalse())

			occupant, _ := engine.PageTable().OccupantOf(1)
			Expect(occupant).To(Equal(3))

			occupant, _ = engine.PageTable().OccupantOf(0)
			Expect(occupant).To(Equal(1))
		})

		It("should count the load as the first access", func() {
			replay(engine, []int{1})

			Expect(engine.PageTable().AccessCountOf(0)).
				To(Equal(uint64(1)))
		})

		It("should break counter ties with the lowest frame index", func() {
			replay(engine, []int{1, 2, 3})

			// Pages 1 and 2 both have count 1; frame 0 loses its page.
			_, resident := engine.PageTable().FrameOf(1)
			Expect(resident).To(BeFalse())

			occupant, _ := engine.PageTable().OccupantOf(0)
			Expect(occupant).To(Equal(3))
		})
	})

	Context("MFU replacement", func() {
		It("should evict the frame with the largest access count", func() {
			engine := mustBuild(MakeBuilder().
				WithPageCount(4).
				WithFrameCount(2).
				WithAlgorithm(MFU),
				"Engine")

			replay(engine, []int{1, 2, 1, 3})

			Expect(engine.FaultCount()).To(Equal(uint64(3)))

			_, resident := engine.PageTable().FrameOf(1)
			Expect(resident).To(BeFalse())

			occupant, _ := engine.PageTable().OccupantOf(0)
			Expect(occupant).To(Equal(3))
		})
	})

	Context("hit path", func() {
		var engine *Engine

		BeforeEach(func() {
			engine = mustBuild(MakeBuilder().
				WithPageCount(4).
				WithFrameCount(2).
				WithAlgorithm(LRU),
				"Engine")

			replay(engine, []int{1, 2})
		})

		It("should not fault or move any page", func() {
			replay(engine, []int{1, 1, 2})

			Expect(engine.FaultCount()).To(Equal(uint64(2)))

			frame, resident := engine.PageTable().FrameOf(1)
			Expect(resident).To(BeTrue())
			Expect(frame).To(Equal(0))

			frame, resident = engine.PageTable().FrameOf(2)
			Expect(resident).To(BeTrue())
			Expect(frame).To(Equal(1))

			engine.PageTable().CheckIntegrity()
		})

		It("should increment exactly the counter of the hit frame", func() {
			replay(engine, []int{1})

			Expect(engine.PageTable().AccessCountOf(0)).
				To(Equal(uint64(2)))
			Expect(engine.PageTable().AccessCountOf(1)).
				To(Equal(uint64(1)))
		})
	})

	Context("degenerate configurations", func() {
		It("should fault on every access with zero frames", func() {
			engine := mustBuild(MakeBuilder().
				WithPageCount(4).
				WithFrameCount(0),
				"Engine")

			replay(engine, []int{0, 1, 2, 3, 0, 1})

			Expect(engine.FaultCount()).To(Equal(uint64(6)))
			engine.PageTable().CheckIntegrity()
		})

		It("should reject every access with zero pages", func() {
			engine := mustBuild(MakeBuilder().
				WithPageCount(0).
				WithFrameCount(3),
				"Engine")

			Expect(engine.Access(0)).ToNot(Succeed())
		})
	})

	Context("invariants", func() {
		longSequence := []int{
			1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5,
			0, 5, 0, 3, 3, 1, 4, 2, 0, 1, 5, 4,
		}

		for _, algorithm := range []ReplacementAlgorithm{FIFO, LRU, MFU} {
			algorithm := algorithm

			It("should keep the tables consistent under "+
				algorithm.String(), func() {
				engine := mustBuild(MakeBuilder().
					WithPageCount(6).
					WithFrameCount(3).
					WithAlgorithm(algorithm),
					"Engine")

				prevFaults := uint64(0)
				for _, page := range longSequence {
					Expect(engine.Access(page)).To(Succeed())

					engine.PageTable().CheckIntegrity()

					Expect(engine.FaultCount()).To(Or(
						Equal(prevFaults), Equal(prevFaults+1)))
					prevFaults = engine.FaultCount()

					numResident := 0
					for n := 0; n < 6; n++ {
						if engine.PageTable().Page(n).Valid {
							numResident++
						}
					}
					Expect(numResident).To(BeNumerically("<=", 3))
				}
			})

			It("should be deterministic under "+algorithm.String(), func() {
				build := func() *Engine {
					return mustBuild(MakeBuilder().
						WithPageCount(6).
						WithFrameCount(3).
						WithAlgorithm(algorithm),
						"Engine")
				}

				e1 := build()
				e2 := build()

				replay(e1, longSequence)
				replay(e2, longSequence)

				Expect(e1.FaultCount()).To(Equal(e2.FaultCount()))
				for n := 0; n < 6; n++ {
					Expect(e1.PageTable().Page(n)).
						To(Equal(e2.PageTable().Page(n)))
				}
			})
		}
	})

	Context("with a mocked victim finder", func() {
		var (
			mockCtrl *gomock.Controller
			finder   *MockVictimFinder
			engine   *Engine
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			finder = NewMockVictimFinder(mockCtrl)

			engine = mustBuild(MakeBuilder().
				WithPageCount(4).
				WithFrameCount(2).
				WithAlgorithm(FIFO),
				"Engine")
			engine.victimFinder = finder
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should not consult the finder while frames are free", func() {
			finder.EXPECT().PageLoaded(1, 0)
			finder.EXPECT().PageLoaded(2, 1)

			replay(engine, []int{1, 2})
		})

		It("should evict the frame the finder chooses", func() {
			finder.EXPECT().PageLoaded(1, 0)
			finder.EXPECT().PageLoaded(2, 1)
			finder.EXPECT().FindVictim(gomock.Any()).Return(0, 1)
			finder.EXPECT().PageLoaded(3, 0)

			replay(engine, []int{1, 2, 3})

			_, resident := engine.PageTable().FrameOf(1)
			Expect(resident).To(BeFalse())

			occupant, _ := engine.PageTable().OccupantOf(0)
			Expect(occupant).To(Equal(3))
		})

		It("should panic if the finder names the wrong occupant", func() {
			finder.EXPECT().PageLoaded(1, 0)
			finder.EXPECT().PageLoaded(2, 1)
			finder.EXPECT().FindVictim(gomock.Any()).Return(0, 2)

			replay(engine, []int{1, 2})
			Expect(func() {
				_ = engine.Access(3)
			}).To(Panic())
		})
	})

	Context("hooks", func() {
		var (
			engine  *Engine
			records []AccessRecord
		)

		BeforeEach(func() {
			engine = mustBuild(MakeBuilder().
				WithPageCount(6).
				WithFrameCount(2).
				WithAlgorithm(FIFO),
				"Engine")

			records = nil
			engine.AcceptHook(hookFunc(func(ctx HookCtx) {
				records = append(records, ctx.Item.(AccessRecord))
			}))
		})

		It("should report hits and faults in order", func() {
			replay(engine, []int{1, 2, 1, 3})

			Expect(records).To(HaveLen(4))

			Expect(records[0]).To(Equal(AccessRecord{
				Seq: 1, Page: 1, Frame: 0, Fault: true}))
			Expect(records[1]).To(Equal(AccessRecord{
				Seq: 2, Page: 2, Frame: 1, Fault: true}))
			Expect(records[2]).To(Equal(AccessRecord{
				Seq: 3, Page: 1, Frame: 0}))
			Expect(records[3]).To(Equal(AccessRecord{
				Seq: 4, Page: 3, Frame: 0, Fault: true,
				Victim: 1, Evicted: true}))
		})
	})
})

type hookFunc func(ctx HookCtx)

func (f hookFunc) Func(ctx HookCtx) {
	f(ctx)
}
