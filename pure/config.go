package pure

import "go.uber.org/zap"

// DefaultNumShards is used when a Config asks for no shards.
const DefaultNumShards = 16

type Config struct {
	NumShards int         // default: DefaultNumShards
	Logger    *zap.Logger // default: zap.NewNop()
	Observer  Observer    // default: no-op
}

func NewConfig(numShards int, logger *zap.Logger, observer Observer) Config {
	if numShards <= 0 {
		numShards = DefaultNumShards
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return Config{
		NumShards: numShards,
		Logger:    logger,
		Observer:  observer,
	}
}

// normalizeConfig flattens optional configs into a single normalized Config.
//
// Accepts either 0 or 1 configs. Panics if more than one is passed.
func normalizeConfig(cfgs []Config) Config {
	switch len(cfgs) {
	case 1:
		return NewConfig(cfgs[0].NumShards, cfgs[0].Logger, cfgs[0].Observer)
	case 0:
		return NewConfig(0, nil, nil)
	default:
		panic("normalizeConfig: only one or zero configs allowed")
	}
}
