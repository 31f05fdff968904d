package cloud_test

import (
	"fmt"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/quantum"
)

var _ = Describe("Sampler", func() {
	var sampler *cloud.Sampler

	BeforeEach(func() {
		sampler = cloud.NewSeeded(2024, cloud.DefaultOptions())
	})

	Describe("point count", func() {
		for _, st := range quantum.All() {
			for _, n := range []int{1, 100, 5000} {
				It(fmt.Sprintf("returns %d points for %s", n, st.Label), func() {
					points := sampler.Generate(cloud.RequestFor(st, n, 0))
					Expect(points).To(HaveLen(n))
				})
			}
		}
	})

	Describe("ranges", func() {
		for _, st := range quantum.All() {
			It("keeps probabilities in [0,1] and positions finite for "+st.Label, func() {
				for _, p := range sampler.Generate(cloud.RequestFor(st, 1000, 0)) {
					Expect(p.Probability).To(BeNumerically(">=", 0))
					Expect(p.Probability).To(BeNumerically("<=", 1))
					Expect(math.IsNaN(p.Position.X) || math.IsNaN(p.Position.Y) || math.IsNaN(p.Position.Z)).To(BeFalse())
					Expect(math.IsInf(p.Radius(), 0)).To(BeFalse())
					for _, c := range p.Color {
						Expect(int(c)).To(BeNumerically("<=", 255))
					}
				}
			})
		}
	})

	It("grows s orbitals with n", func() {
		small := cloud.Summarize(sampler.Generate(cloud.Request{N: 1, L: 0, M: 0, NumPoints: 3000}))
		large := cloud.Summarize(sampler.Generate(cloud.Request{N: 3, L: 0, M: 0, NumPoints: 3000}))
		Expect(large.MeanRadius).To(BeNumerically(">", small.MeanRadius))
	})

	It("stretches pz along z", func() {
		s := cloud.Summarize(sampler.Generate(cloud.Request{N: 2, L: 1, M: 0, NumPoints: 2000}))
		Expect(s.MeanAbsZ).To(BeNumerically(">", 1.5*s.MeanAbsX))
		Expect(s.MeanAbsZ).To(BeNumerically(">", 1.5*s.MeanAbsY))
	})

	It("stretches px along x", func() {
		s := cloud.Summarize(sampler.Generate(cloud.Request{N: 2, L: 1, M: 1, NumPoints: 2000}))
		Expect(s.MeanAbsX).To(BeNumerically(">", 1.5*s.MeanAbsZ))
	})
})

var _ = Describe("ApplyCutoff", func() {
	var points []cloud.Point

	BeforeEach(func() {
		points = cloud.NewSeeded(7, cloud.DefaultOptions()).Generate(cloud.Request{N: 3, L: 2, M: 0, NumPoints: 500})
	})

	It("keeps everything at 0", func() {
		Expect(cloud.ApplyCutoff(points, 0)).To(Equal(points))
	})

	It("drops everything above 1", func() {
		Expect(cloud.ApplyCutoff(points, 1.01)).To(BeEmpty())
	})

	It("keeps only points at or above the threshold", func() {
		for _, p := range cloud.ApplyCutoff(points, 0.3) {
			Expect(p.Probability).To(BeNumerically(">=", 0.3))
		}
	})
})
