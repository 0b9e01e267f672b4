package objstm

import "fmt"

func validateBuildConfig(cfg buildConfig) error {
	if cfg.MaxObjectsPerStream < 1 {
		return fmt.Errorf("%w: max objects per stream must be positive, got %d", ErrInvalidConfig, cfg.MaxObjectsPerStream)
	}
	if cfg.CompressionLevel < 0 || cfg.CompressionLevel > 9 {
		return fmt.Errorf("%w: compression level must be in 0..9, got %d", ErrInvalidConfig, cfg.CompressionLevel)
	}
	if !supportedFilter(cfg.filter) {
		return fmt.Errorf("%w: filter %q", ErrInvalidConfig, cfg.filter)
	}
	return nil
}

// validateStorable rejects values that may not live inside an object stream.
func validateStorable(obj Object) error {
	if obj == nil {
		return fmt.Errorf("%w: nil object", ErrUnsupportedObject)
	}
	if _, ok := obj.(*Stream); ok {
		return ErrDisallowedContent
	}
	return nil
}
