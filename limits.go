package objstm

type Limits struct {
	MaxDecompressedLen uint64 // bytes a filter may expand a payload to
	MaxNestingDepth    int    // arrays and dictionaries nested inside one object
}

func defaultLimits() Limits {
	return Limits{
		MaxDecompressedLen: 64 << 20, // 64 MiB
		MaxNestingDepth:    256,
	}
}

// DefaultLimits returns the limits applied when none are configured.
func DefaultLimits() Limits {
	return defaultLimits()
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxDecompressedLen == 0 {
		l.MaxDecompressedLen = d.MaxDecompressedLen
	}
	if l.MaxNestingDepth == 0 {
		l.MaxNestingDepth = d.MaxNestingDepth
	}
	return l
}
