package observe

import (
	"github.com/on-the-ground/memoize_ive_go/pure"
	"go.uber.org/zap"
)

type zapObserver struct {
	logger *zap.Logger
}

// NewZapObserver logs hits and misses at debug level and faults at warn level.
// A nil logger falls back to zap.NewNop().
func NewZapObserver(logger *zap.Logger) pure.Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return zapObserver{logger: logger}
}

func (o zapObserver) On(data pure.EventData) {
	fields := []zap.Field{
		zap.String("event", string(data.Event)),
		zap.Stringer("table_id", data.TableID),
		zap.String("key", string(data.Key)),
	}
	switch data.Event {
	case pure.EventFault:
		o.logger.Warn("memoized call faulted", fields...)
	default:
		o.logger.Debug("memoized call", fields...)
	}
}
