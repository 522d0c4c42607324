package holiday

import (
	"context"

	"go.uber.org/zap"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

// Composite tries a primary provider and falls back to a secondary when the
// primary fails. Typical wiring: Google Calendar primary, Static fallback
// from a config-shipped table.
type Composite struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

func NewComposite(primary, fallback Provider, logger *zap.Logger) *Composite {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composite{primary: primary, fallback: fallback, logger: logger}
}

func (c *Composite) HolidaysForMonth(ctx context.Context, year, month int) (attendance.HolidayMap, error) {
	holidays, err := c.primary.HolidaysForMonth(ctx, year, month)
	if err == nil {
		return holidays, nil
	}

	c.logger.Warn("primary holiday provider failed, using fallback",
		zap.Int("year", year), zap.Int("month", month), zap.Error(err))

	return c.fallback.HolidaysForMonth(ctx, year, month)
}
