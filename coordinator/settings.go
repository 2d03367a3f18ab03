package coordinator

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ParallelMandelbrot/convolution"
	"ParallelMandelbrot/mandelbrot"
	"ParallelMandelbrot/misc"
)

type Settings struct {
	ConvolutionSettings convolution.Settings
	HeartbeatSeconds    int
	MandelbrotSettings  mandelbrot.Settings
	OutputFile          string
	RunName             string
	SavePath            string
	Workers             int
}

// NewSettings reads settingsFile, when one is given, applies overrides in order and verifies
// the result. Values still missing take their defaults.
func NewSettings(settingsFile string, overrides ...func(*Settings)) (Settings, error) {
	var s Settings
	if settingsFile != "" {
		fileBytes, err := misc.ReadFile(settingsFile)
		if err != nil {
			return s, err
		}
		if err = json.Unmarshal(fileBytes, &s); err != nil {
			return s, fmt.Errorf("unable to parse %s - %w", settingsFile, err)
		}
	}
	for _, override := range overrides {
		override(&s)
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Run: %s\n", s.RunName)
	output += fmt.Sprintf("Save Path: %s\n", s.SavePath)
	output += fmt.Sprintf("Output File: %s\n", s.OutputFile)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	output += s.MandelbrotSettings.String()
	output += s.ConvolutionSettings.String()
	return output
}

func (s *Settings) Verify() error {
	if err := s.MandelbrotSettings.Verify(); err != nil {
		return err
	}
	if err := s.ConvolutionSettings.Verify(); err != nil {
		return err
	}
	if s.HeartbeatSeconds < 0 {
		s.HeartbeatSeconds = 0
	}
	if s.OutputFile == "" {
		s.OutputFile = "mandelbrot-task.ppm"
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	// Workers <= 0 lets the pool pick GOMAXPROCS
	return nil
}
