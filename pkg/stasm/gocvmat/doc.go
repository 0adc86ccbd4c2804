// Package gocvmat moves images between gocv (OpenCV) and the Stasm binding.
//
// Stasm itself links OpenCV, so programs that already hold gocv.Mat values
// can hand them to a stasm.Session without going through image.Image:
//
//	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
//	defer mat.Close()
//	img, err := gocvmat.FromMat(mat)
//	...
//	face, err := sess.SearchSingle(img, stasm.SingleOptions{})
//	gocvmat.DrawLandmarks(&bgr, face, color.RGBA{G: 255, A: 255}, 2)
//
// Only 8-bit single-channel mats are accepted. A mat with several channels
// fails with stasm.ErrInvalidImageShape; any other depth fails with
// stasm.ErrInvalidImage.
package gocvmat
