package combine

import (
	"time"

	"go.uber.org/zap"
)

// Execute is the entry point for the combine package. It runs the pipeline
// and logs how long it took.
func Execute(args Arguments, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	startTime := time.Now()
	logger.Debug("Starting copyfiles run",
		zap.String("root", args.Root),
		zap.String("output", args.Output),
		zap.String("config", args.ExtraPatternsFile),
		zap.Int("maxBytes", args.MaxBytes))

	report, err := Run(args, logger)
	if err != nil {
		logger.Debug("copyfiles run failed", zap.Duration("elapsed", time.Since(startTime)), zap.Error(err))
		return Report{}, err
	}

	logger.Debug("copyfiles run completed",
		zap.String("output", report.OutputPath),
		zap.Int("kept", report.Kept),
		zap.Duration("elapsed", time.Since(startTime)))
	return report, nil
}
