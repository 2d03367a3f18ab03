package convolution

import "fmt"

type Settings struct {
	KernelWidth int
	Passes      int
	Sigma       float64
	TaskSize    int
}

func (s *Settings) String() string {
	output := "\nConvolution settings\n"
	output += fmt.Sprintf("Kernel Width: %d\n", s.KernelWidth)
	output += fmt.Sprintf("Sigma: %g\n", s.Sigma)
	output += fmt.Sprintf("Passes: %d\n", s.Passes)
	output += fmt.Sprintf("Task Size: %d\n", s.TaskSize)
	return output
}

// Verify fills unset values with defaults. An even kernel width has no center cell and is
// rejected.
func (s *Settings) Verify() error {
	if s.KernelWidth == 0 {
		s.KernelWidth = 5
	}
	if s.Passes <= 0 {
		s.Passes = 20
	}
	if s.Sigma <= 0 {
		s.Sigma = 0.37
	}
	if s.TaskSize <= 0 {
		s.TaskSize = 256
	}

	if s.KernelWidth < 0 || s.KernelWidth%2 == 0 {
		return fmt.Errorf("%w: got %d", ErrKernelSize, s.KernelWidth)
	}
	return nil
}
