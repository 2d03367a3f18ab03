package mandelbrot

import (
	"fmt"

	"ParallelMandelbrot/misc"
	"ParallelMandelbrot/task"
)

type Settings struct {
	EscapeRadius  float64
	Gradient      Gradient
	Height        int
	MaxIterations int
	Ratio         float64
	TaskSize      int
	Width         int
}

func (s *Settings) String() string {
	output := "\nMandelbrot settings\n"
	output += fmt.Sprintf("Size: %dx%d\n", s.Width, s.Height)
	output += fmt.Sprintf("Ratio: %g\n", s.Ratio)
	output += fmt.Sprintf("Max Iterations: %d\n", s.MaxIterations)
	output += fmt.Sprintf("Escape Radius: %g\n", s.EscapeRadius)
	output += fmt.Sprintf("Gradient Segments: %d\n", len(s.Gradient))
	output += fmt.Sprintf("Task Size: %d\n", s.TaskSize)
	return output
}

// Verify fills unset values with defaults and rejects a gradient that cannot be used.
func (s *Settings) Verify() error {
	logger := misc.NewLogger("MandelbrotSettings", nil)

	if s.EscapeRadius <= 0 {
		s.EscapeRadius = 4.0
	}
	if len(s.Gradient) == 0 {
		s.Gradient = DefaultGradient()
	}
	if s.Height <= 0 {
		s.Height = 1024
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = 2048
	}
	if s.Width <= 0 {
		s.Width = 1536
	}
	// Keep the height/width ratio of the image
	if s.Ratio <= 0 {
		s.Ratio = float64(s.Width) / float64(s.Height)
	}
	if s.TaskSize <= 0 {
		s.TaskSize = 512
	}

	if s.TaskSize > s.Width {
		logger.Warningf("Task size %d is larger than width %d; no column will be rendered", s.TaskSize, s.Width)
	} else if dropped := s.Width - task.Covered(s.Width, s.TaskSize); dropped > 0 {
		logger.Warningf("Width %d is not a multiple of task size %d; the last %d columns will not be rendered", s.Width, s.TaskSize, dropped)
	}

	return s.Gradient.Verify()
}
