// Package obbfit fits minimal oriented bounding boxes to point clouds using
// principal component analysis.
package obbfit

import (
	"gonum.org/v1/gonum/mat"

	"github.com/softrender/boxcam/pkg/math3d"
)

// Box is an oriented box fit over a point cloud.
type Box struct {
	Center   math3d.Vec3
	Size     math3d.Vec3
	Rotation math3d.Quat
}

// Fit computes an oriented box covering the points. The box axes are the
// eigenvectors of the cloud's covariance matrix, ordered by descending
// eigenvalue, and the extents are the point spans along each axis. Fit
// reports false when the cloud is empty or the eigendecomposition fails.
func Fit(points []math3d.Vec3) (Box, bool) {
	if len(points) == 0 {
		return Box{}, false
	}

	mean := math3d.Zero3()
	for _, p := range points {
		mean = mean.Add(p)
	}
	mean = mean.Scale(1 / float64(len(points)))

	// Covariance of the centered cloud.
	var cxx, cxy, cxz, cyy, cyz, czz float64
	for _, p := range points {
		d := p.Sub(mean)
		cxx += d.X * d.X
		cxy += d.X * d.Y
		cxz += d.X * d.Z
		cyy += d.Y * d.Y
		cyz += d.Y * d.Z
		czz += d.Z * d.Z
	}
	n := float64(len(points))
	cov := mat.NewSymDense(3, []float64{
		cxx / n, cxy / n, cxz / n,
		cxy / n, cyy / n, cyz / n,
		cxz / n, cyz / n, czz / n,
	})

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return Box{}, false
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// EigenSym orders eigenvalues ascending; take the columns in reverse so
	// the first box axis carries the largest variance.
	axes := [3]math3d.Vec3{
		{X: vecs.At(0, 2), Y: vecs.At(1, 2), Z: vecs.At(2, 2)},
		{X: vecs.At(0, 1), Y: vecs.At(1, 1), Z: vecs.At(2, 1)},
		{X: vecs.At(0, 0), Y: vecs.At(1, 0), Z: vecs.At(2, 0)},
	}

	// Eigenvectors of a symmetric matrix are orthogonal but their signs are
	// arbitrary; flip the last axis if the basis is left-handed so the
	// rotation is proper.
	if axes[0].Cross(axes[1]).Dot(axes[2]) < 0 {
		axes[2] = axes[2].Negate()
	}

	rot := math3d.FromBasis(axes[0], axes[1], axes[2], math3d.Zero3())
	q := math3d.QuatFromMat4(rot)

	// Extents along each axis.
	first := points[0].Sub(mean)
	minP := math3d.V3(first.Dot(axes[0]), first.Dot(axes[1]), first.Dot(axes[2]))
	maxP := minP
	for _, p := range points[1:] {
		d := p.Sub(mean)
		proj := math3d.V3(d.Dot(axes[0]), d.Dot(axes[1]), d.Dot(axes[2]))
		minP = minP.Min(proj)
		maxP = maxP.Max(proj)
	}

	mid := minP.Add(maxP).Scale(0.5)
	center := mean.
		Add(axes[0].Scale(mid.X)).
		Add(axes[1].Scale(mid.Y)).
		Add(axes[2].Scale(mid.Z))

	return Box{
		Center:   center,
		Size:     maxP.Sub(minP),
		Rotation: q,
	}, true
}
