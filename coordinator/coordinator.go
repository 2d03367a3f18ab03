package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"ParallelMandelbrot/convolution"
	"ParallelMandelbrot/mandelbrot"
	"ParallelMandelbrot/misc"
	"ParallelMandelbrot/raster"
	"ParallelMandelbrot/worker"
)

const settingsBackup = "settings.json"

type Coordinator struct {
	convolution convolution.Convolution
	logFile     *os.File
	logger      bslogger.Logger
	mandelbrot  mandelbrot.Mandelbrot
	pool        *worker.Pool
	runPath     string
	settings    Settings
}

// Result summarizes one run.
type Result struct {
	ConvolutionTime time.Duration
	MandelbrotTime  time.Duration
	OutputPath      string
	PixelsInside    int
}

func (r *Result) String() string {
	output := "{Result "
	output += fmt.Sprintf("Inside: %d ", r.PixelsInside)
	output += fmt.Sprintf("Mandelbrot: %s ", r.MandelbrotTime)
	output += fmt.Sprintf("Convolution: %s ", r.ConvolutionTime)
	output += fmt.Sprintf("Output: %s}", r.OutputPath)
	return output
}

// NewCoordinator verifies settings and prepares the run directory: a copy of the effective
// settings so the run can be repeated, and a log file recording it.
func NewCoordinator(settings Settings) (*Coordinator, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	coordinator := &Coordinator{
		logger:   misc.NewLogger("Coordinator", nil),
		runPath:  filepath.Join(settings.SavePath, settings.RunName),
		settings: settings,
	}

	// Create directory to store files for this run
	if err := os.MkdirAll(coordinator.runPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("unable to create folder %s - %w", coordinator.runPath, err)
	}

	// Copy the settings to the directory so the run can be duplicated in the future
	settingsBytes, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to encode settings - %w", err)
	}
	bytesWritten, err := misc.WriteFile(filepath.Join(coordinator.runPath, settingsBackup), settingsBytes)
	if err != nil || bytesWritten == 0 {
		return nil, fmt.Errorf("unable to make a backup copy of the settings - %w", err)
	}

	// Create a log file to record the run
	logFile, err := os.Create(filepath.Join(coordinator.runPath, "coordinator.log"))
	if !misc.CheckError(err, &coordinator.logger, misc.Warning) {
		coordinator.logFile = logFile
		coordinator.logger = misc.NewLogger("Coordinator", logFile)
	}

	coordinator.pool = worker.NewPool("Pool", settings.Workers)
	coordinator.pool.SetHeartbeat(time.Duration(settings.HeartbeatSeconds) * time.Second)
	coordinator.mandelbrot = mandelbrot.NewMandelbrot(settings.MandelbrotSettings, coordinator.pool)
	coordinator.convolution = convolution.NewConvolution(settings.ConvolutionSettings, coordinator.pool)

	coordinator.logger.Debug(settings.String())
	return coordinator, nil
}

func (c *Coordinator) RunPath() string {
	return c.runPath
}

// Run renders the field, filters it and saves the filtered image as a PPM file.
func (c *Coordinator) Run(ctx context.Context) (Result, error) {
	var result Result
	ms := c.settings.MandelbrotSettings

	// Generate the mandelbrot set in this image
	image, err := raster.New(raster.Channels, ms.Height, ms.Width)
	if err != nil {
		return result, err
	}
	// Save the results of the convolution in this image
	filtered, err := raster.New(raster.Channels, ms.Height, ms.Width)
	if err != nil {
		return result, err
	}

	c.logger.Infof("Generating %dx%d image with %d tasks on %d workers", ms.Width, ms.Height, ms.TaskSize, c.pool.Workers())
	startTime := time.Now()
	result.PixelsInside, err = c.mandelbrot.Generate(ctx, image)
	if err != nil {
		return result, fmt.Errorf("generating mandelbrot set: %w", err)
	}
	result.MandelbrotTime = time.Since(startTime)
	c.logger.Infof("Mandelbrot time: %s", result.MandelbrotTime)
	c.logger.Infof("Total Mandelbrot pixels: %d", result.PixelsInside)

	cs := c.settings.ConvolutionSettings
	c.logger.Infof("Filtering with a %dx%d kernel (sigma %g) for %d passes", cs.KernelWidth, cs.KernelWidth, cs.Sigma, cs.Passes)
	startTime = time.Now()
	final, err := c.convolution.Convolve(ctx, image, filtered)
	if err != nil {
		return result, fmt.Errorf("convolving image: %w", err)
	}
	result.ConvolutionTime = time.Since(startTime)
	c.logger.Infof("Convolution time: %s", result.ConvolutionTime)
	c.logger.Infof("Total time: %s", result.MandelbrotTime+result.ConvolutionTime)

	var ppm bytes.Buffer
	if err = raster.EncodePPM(&ppm, final); err != nil {
		return result, fmt.Errorf("encoding image: %w", err)
	}
	result.OutputPath = filepath.Join(c.runPath, c.settings.OutputFile)
	if _, err = misc.WriteFile(result.OutputPath, ppm.Bytes()); err != nil {
		return result, err
	}
	c.logger.Infof("Saved image to %s", result.OutputPath)

	return result, nil
}

func (c *Coordinator) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}
