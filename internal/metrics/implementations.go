// Concrete implementations of quality metrics
package metrics

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
	"image-processing-engine/internal/io"
)

// SSIM window
const (
	ssimWindow = 11
	ssimSigma  = 1.5
)

// grayFloat converts buf to a single channel CV_64F luma Mat; the caller owns the result
func grayFloat(buf *core.PixelBuffer) (gocv.Mat, error) {
	bgr, err := io.ToMat(buf)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray); err != nil {
		return gocv.NewMat(), err
	}

	f := gocv.NewMat()
	gray.ConvertTo(&f, gocv.MatTypeCV64F)
	return f, nil
}

func grayPair(original, processed *core.PixelBuffer) (gocv.Mat, gocv.Mat, error) {
	if err := checkPair(original, processed); err != nil {
		return gocv.NewMat(), gocv.NewMat(), err
	}

	a, err := grayFloat(original)
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), err
	}
	b, err := grayFloat(processed)
	if err != nil {
		a.Close()
		return gocv.NewMat(), gocv.NewMat(), err
	}
	return a, b, nil
}

// meanSquaredError is ||a-b||² / N over two luma Mats
func meanSquaredError(a, b gocv.Mat) (float64, error) {
	diff := gocv.NewMat()
	defer diff.Close()
	if err := gocv.Subtract(a, b, &diff); err != nil {
		return 0, err
	}

	norm := gocv.Norm(diff, gocv.NormL2)
	return norm * norm / float64(a.Total()), nil
}

// MSE implements Mean Squared Error on luma
type MSE struct{}

// NewMSE creates a new MSE metric
func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed *core.PixelBuffer) (float64, error) {
	a, b, err := grayPair(original, processed)
	if err != nil {
		return 0, err
	}
	defer a.Close()
	defer b.Close()

	return meanSquaredError(a, b)
}

func (m *MSE) GetName() string {
	return "MSE"
}

func (m *MSE) GetDescription() string {
	return "Mean Squared Error between luma planes"
}

func (m *MSE) GetRange() (float64, float64) {
	return 0, 255 * 255
}

func (m *MSE) IsHigherBetter() bool {
	return false
}

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

// NewPSNR creates a new PSNR metric
func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(original, processed *core.PixelBuffer) (float64, error) {
	a, b, err := grayPair(original, processed)
	if err != nil {
		return 0, err
	}
	defer a.Close()
	defer b.Close()

	mse, err := meanSquaredError(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}

	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string {
	return "PSNR"
}

func (p *PSNR) GetDescription() string {
	return "Peak Signal-to-Noise Ratio - measures image quality"
}

func (p *PSNR) GetRange() (float64, float64) {
	return 0, 100 // Practical range, can go higher
}

func (p *PSNR) IsHigherBetter() bool {
	return true
}

// SSIM implements the Structural Similarity Index on luma, averaged over
// 11x11 Gaussian windows (sigma 1.5)
type SSIM struct{}

// NewSSIM creates a new SSIM metric
func NewSSIM() *SSIM {
	return &SSIM{}
}

func (s *SSIM) Calculate(original, processed *core.PixelBuffer) (float64, error) {
	a, b, err := grayPair(original, processed)
	if err != nil {
		return 0, err
	}
	defer a.Close()
	defer b.Close()

	return calculateSSIM(a, b)
}

// windowKernel is the normalized 2D Gaussian window as a CV_64F Mat
func windowKernel() (gocv.Mat, error) {
	k, err := algorithms.GaussianKernel(ssimWindow, ssimSigma)
	if err != nil {
		return gocv.NewMat(), err
	}

	m := gocv.NewMatWithSize(k.Size, k.Size, gocv.MatTypeCV64F)
	for y := 0; y < k.Size; y++ {
		for x := 0; x < k.Size; x++ {
			m.SetDoubleAt(y, x, k.At(x, y))
		}
	}
	return m, nil
}

func calculateSSIM(f1, f2 gocv.Mat) (float64, error) {
	const (
		C1 = 6.5025  // (0.01 * 255)^2
		C2 = 58.5225 // (0.03 * 255)^2
	)

	kernel, err := windowKernel()
	if err != nil {
		return 0, err
	}
	defer kernel.Close()

	var mats []*gocv.Mat
	newMat := func() *gocv.Mat {
		m := gocv.NewMat()
		mats = append(mats, &m)
		return &m
	}
	defer func() {
		for _, m := range mats {
			m.Close()
		}
	}()

	blur := func(src gocv.Mat) (*gocv.Mat, error) {
		dst := newMat()
		err := gocv.Filter2D(src, dst, -1, kernel, image.Point{X: -1, Y: -1}, 0, gocv.BorderReflect101)
		return dst, err
	}
	mul := func(x, y gocv.Mat) (*gocv.Mat, error) {
		dst := newMat()
		return dst, gocv.Multiply(x, y, dst)
	}

	mu1, err := blur(f1)
	if err != nil {
		return 0, err
	}
	mu2, err := blur(f2)
	if err != nil {
		return 0, err
	}

	mu1Sq, err := mul(*mu1, *mu1)
	if err != nil {
		return 0, err
	}
	mu2Sq, err := mul(*mu2, *mu2)
	if err != nil {
		return 0, err
	}
	mu1Mu2, err := mul(*mu1, *mu2)
	if err != nil {
		return 0, err
	}

	// sigma = blur(x*y) - mu_x*mu_y
	sigma := func(x, y, mu gocv.Mat) (*gocv.Mat, error) {
		xy, err := mul(x, y)
		if err != nil {
			return nil, err
		}
		blurred, err := blur(*xy)
		if err != nil {
			return nil, err
		}
		dst := newMat()
		return dst, gocv.Subtract(*blurred, mu, dst)
	}

	sigma1Sq, err := sigma(f1, f1, *mu1Sq)
	if err != nil {
		return 0, err
	}
	sigma2Sq, err := sigma(f2, f2, *mu2Sq)
	if err != nil {
		return 0, err
	}
	sigma12, err := sigma(f1, f2, *mu1Mu2)
	if err != nil {
		return 0, err
	}

	// (2*mu1*mu2 + C1) * (2*sigma12 + C2)
	mu1Mu2.MultiplyFloat(2)
	mu1Mu2.AddFloat(C1)
	sigma12.MultiplyFloat(2)
	sigma12.AddFloat(C2)
	numerator, err := mul(*mu1Mu2, *sigma12)
	if err != nil {
		return 0, err
	}

	// (mu1² + mu2² + C1) * (sigma1² + sigma2² + C2)
	den1 := newMat()
	if err := gocv.Add(*mu1Sq, *mu2Sq, den1); err != nil {
		return 0, err
	}
	den1.AddFloat(C1)
	den2 := newMat()
	if err := gocv.Add(*sigma1Sq, *sigma2Sq, den2); err != nil {
		return 0, err
	}
	den2.AddFloat(C2)
	denominator, err := mul(*den1, *den2)
	if err != nil {
		return 0, err
	}

	ssimMap := newMat()
	if err := gocv.Divide(*numerator, *denominator, ssimMap); err != nil {
		return 0, err
	}

	return ssimMap.Mean().Val1, nil
}

func (s *SSIM) GetName() string {
	return "SSIM"
}

func (s *SSIM) GetDescription() string {
	return "Structural Similarity Index - perceptual similarity over Gaussian windows"
}

func (s *SSIM) GetRange() (float64, float64) {
	return -1, 1
}

func (s *SSIM) IsHigherBetter() bool {
	return true
}
