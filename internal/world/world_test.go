package world_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/planarsim/internal/geometry"
	"github.com/san-kum/planarsim/internal/world"
)

var _ = Describe("World", func() {
	var (
		arena *geometry.ConvexPolygon
		w     *world.World
	)

	BeforeEach(func() {
		geometry.Seed(5)

		var err error
		arena, err = geometry.NewConvexPolygon([]geometry.Vec2{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		})
		Expect(err).NotTo(HaveOccurred())
		w = world.New(arena)
	})

	It("uses the arena edges as walls", func() {
		pt, dist, err := w.Closest(geometry.Vec2{X: 5, Y: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeNumerically("~", 1.0, 1e-6))
		Expect(pt.X).To(BeNumerically("~", 5.0, 1e-6))
		Expect(pt.Y).To(BeNumerically("~", 0.0, 1e-6))

		feature := w.NearestFeature()
		Expect(feature).NotTo(BeNil())
		Expect(feature.Kind).To(Equal(world.FeatureWall))
		Expect(feature.Index).To(Equal(0))
	})

	It("reports an inside obstacle with zero distance", func() {
		circle, err := geometry.NewEllipse(geometry.Vec2{X: 5, Y: 5}, 0, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		w.AddObstacle(circle)

		query := geometry.Vec2{X: 5, Y: 5}
		pt, dist, err := w.Closest(query)
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeZero())
		Expect(pt).To(Equal(query))

		feature := w.NearestFeature()
		Expect(feature).NotTo(BeNil())
		Expect(feature.Kind).To(Equal(world.FeatureObstacle))
		Expect(feature.Index).To(Equal(0))
	})

	It("prefers the strictly closer side", func() {
		circle, err := geometry.NewEllipse(geometry.Vec2{X: 5, Y: 5}, 0, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		w.AddObstacle(circle)

		// (5, 3.5) is 1.5 from the circle boundary and 3.5 from the
		// bottom wall.
		_, dist, err := w.Closest(geometry.Vec2{X: 5, Y: 3.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeNumerically("~", 1.5, 1e-6))
		Expect(w.NearestFeature().Kind).To(Equal(world.FeatureObstacle))

		// (5, 0.5) is 0.5 from the bottom wall and 3.5 from the circle.
		_, dist, err = w.Closest(geometry.Vec2{X: 5, Y: 0.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeNumerically("~", 0.5, 1e-6))
		Expect(w.NearestFeature().Kind).To(Equal(world.FeatureWall))
	})

	It("lets the wall win exact ties", func() {
		// A circle straddling the bottom wall: the query point sits on
		// the wall and inside the circle, so both sides report exactly
		// zero and the wall must be recorded.
		circle, err := geometry.NewEllipse(geometry.Vec2{X: 5, Y: 0}, 0, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		w.AddObstacle(circle)

		query := geometry.Vec2{X: 5, Y: 0}
		pt, dist, err := w.Closest(query)
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeZero())
		Expect(pt).To(Equal(query))
		Expect(w.NearestFeature().Kind).To(Equal(world.FeatureWall))
	})

	It("handles polygonal obstacles", func() {
		block, err := geometry.NewConvexPolygon([]geometry.Vec2{
			{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6},
		})
		Expect(err).NotTo(HaveOccurred())
		w.AddObstacle(block)

		pt, dist, err := w.Closest(geometry.Vec2{X: 3, Y: 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeNumerically("~", 1.0, 1e-6))
		Expect(pt.X).To(BeNumerically("~", 4.0, 1e-6))
		Expect(pt.Y).To(BeNumerically("~", 5.0, 1e-6))
		Expect(w.NearestFeature().Kind).To(Equal(world.FeatureObstacle))
	})

	It("falls back to +Inf semantics when a side is empty", func() {
		empty := world.New(nil)
		circle, err := geometry.NewEllipse(geometry.Vec2{X: 0, Y: 0}, 0, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		empty.AddObstacle(circle)

		_, dist, err := empty.Closest(geometry.Vec2{X: 3, Y: 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeNumerically("~", 2.0, 1e-6))
		Expect(empty.NearestFeature().Kind).To(Equal(world.FeatureObstacle))
	})

	It("rejects queries against an empty world", func() {
		empty := world.New(nil)
		_, _, err := empty.Closest(geometry.Vec2{})
		Expect(err).To(MatchError(world.ErrEmptyWorld))
	})

	It("emits records for the arena and all obstacles", func() {
		circle, err := geometry.NewEllipse(geometry.Vec2{X: 5, Y: 5}, 0, 1, 2)
		Expect(err).NotTo(HaveOccurred())
		w.AddObstacle(circle)

		records := w.Records()
		Expect(records).To(HaveLen(2))
		Expect(records[0].Kind).To(Equal(geometry.KindPolygon))
		Expect(records[0].Vertices).To(HaveLen(4))
		Expect(records[1].Kind).To(Equal(geometry.KindEllipse))
		Expect(records[1].SemiAxes).To(Equal([2]float64{1, 2}))
	})
})
