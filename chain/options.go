package chain

import (
	"fmt"

	"github.com/bdragon300/chainhash/hashfn"
	"go.uber.org/zap"
)

type config struct {
	family       hashfn.Family
	seed         uint32
	hasSeed      bool
	initialSize  uint32
	growthFactor uint32
	keySize      int
	hasKeySize   bool
	valueSize    int
	hasValueSize bool
	logger       *zap.Logger
}

func defaultConfig() config {
	return config{
		family:       hashfn.Murmur3,
		initialSize:  InitialSize,
		growthFactor: defaultGrowthFactor,
		keySize:      -1,
		valueSize:    -1,
		logger:       zap.NewNop(),
	}
}

func (c config) validate(flags Flags) error {
	if !c.family.Valid() {
		return fmt.Errorf("hash family %q has unset variants: %w", c.family.Name, ErrInvalidArgument)
	}
	if c.initialSize == 0 || c.initialSize > MaxArraySize {
		return fmt.Errorf("initial size must be in range [1, %d], got %d: %w", MaxArraySize, c.initialSize, ErrInvalidArgument)
	}
	if c.growthFactor < 2 {
		return fmt.Errorf("growth factor must be at least 2, got %d: %w", c.growthFactor, ErrInvalidArgument)
	}
	if c.hasKeySize {
		if flags&FlagKeyConst == 0 {
			return fmt.Errorf("key size is set without FlagKeyConst: %w", ErrInvalidArgument)
		}
		if c.keySize <= 0 {
			return fmt.Errorf("key size must be positive, got %d: %w", c.keySize, ErrInvalidArgument)
		}
	}
	if c.hasValueSize {
		if flags&FlagValueConst == 0 {
			return fmt.Errorf("value size is set without FlagValueConst: %w", ErrInvalidArgument)
		}
		if c.valueSize < 0 {
			return fmt.Errorf("value size must not be negative, got %d: %w", c.valueSize, ErrInvalidArgument)
		}
	}
	return nil
}

// Option configures a Table on creation.
type Option func(*config)

// WithHashFamily binds the table to the given hash functions instead of hashfn.Murmur3.
func WithHashFamily(f hashfn.Family) Option {
	return func(c *config) {
		c.family = f
	}
}

// WithSeed gives the table its own seed, so it ignores SetSeed.
func WithSeed(seed uint32) Option {
	return func(c *config) {
		c.seed = seed
		c.hasSeed = true
	}
}

// WithInitialSize overrides the InitialSize of the bucket array.
func WithInitialSize(size uint32) Option {
	return func(c *config) {
		c.initialSize = size
	}
}

// WithGrowthFactor sets how many times the bucket array grows on autoresize. Default is 2.
func WithGrowthFactor(factor uint32) Option {
	return func(c *config) {
		c.growthFactor = factor
	}
}

// WithKeySize fixes the key length up front. Requires FlagKeyConst. Without this option the length of the first
// inserted key is used.
func WithKeySize(size int) Option {
	return func(c *config) {
		c.keySize = size
		c.hasKeySize = true
	}
}

// WithValueSize fixes the value length up front. Requires FlagValueConst.
func WithValueSize(size int) Option {
	return func(c *config) {
		c.valueSize = size
		c.hasValueSize = true
	}
}

// WithLogger sets a logger for table events such as resizes. Nothing is logged by default or with a nil logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}
