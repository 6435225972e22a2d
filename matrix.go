package scenekit

// A 3x3 matrix is stored row-major as nine floats, the same layout
// wlr_matrix_project_box and an output's transform matrix use: index
// 3*row+col.

func identityMat3() [9]float32 {
	return [9]float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func translationMat3(x, y float32) [9]float32 {
	return [9]float32{
		1, 0, x,
		0, 1, y,
		0, 0, 1,
	}
}

func scalingMat3(x, y float32) [9]float32 {
	return [9]float32{
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	}
}

func mulMat3(a, b [9]float32) [9]float32 {
	var out [9]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			out[row*3+col] = sum
		}
	}
	return out
}

// unitTransformMat3 returns the affine matrix mapping the unit square
// (0,0)-(1,1) through t, derived from transformPoint's corner mapping
// rather than a hardcoded per-transform table, so it stays consistent
// with transformRegion's notion of what each OutputTransform does.
func unitTransformMat3(t OutputTransform) [9]float32 {
	ox, oy := transformPoint(t, 0, 0, 1, 1)
	xx, xy := transformPoint(t, 1, 0, 1, 1)
	yx, yy := transformPoint(t, 0, 1, 1, 1)
	return [9]float32{
		float32(xx - ox), float32(yx - ox), float32(ox),
		float32(xy - oy), float32(yy - oy), float32(oy),
		0, 0, 1,
	}
}

// projectBoxMatrix builds the matrix RenderSubTexture/RenderRect expect:
// box's position and size, rotated/flipped by transform around the unit
// square, then composed with base (the output's own transform matrix).
// Mirrors wlr_matrix_project_box with no node rotation, which scenekit
// does not support.
func projectBoxMatrix(box Box, transform OutputTransform, base [9]float32) [9]float32 {
	mat := identityMat3()
	mat = mulMat3(mat, translationMat3(float32(box.X), float32(box.Y)))
	mat = mulMat3(mat, scalingMat3(float32(box.Width), float32(box.Height)))
	if transform != TransformNormal {
		mat = mulMat3(mat, unitTransformMat3(transform))
	}
	return mulMat3(base, mat)
}
