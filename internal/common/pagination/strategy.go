package pagination

// Strategy defines an interface for different pagination strategies.
// This enables future support for cursor-based or keyset-based pagination
// without changing handler or service layer code.
type Strategy interface {
	// BuildMetadata constructs pagination metadata from the requested
	// params and the size of the filtered result set.
	BuildMetadata(params Params, total int) Metadata
}

// LoadMoreStrategy implements prefix-based "load more" pagination.
// This is the current implementation used by the content endpoints.
type LoadMoreStrategy struct {
	Step int // Items added per "load more"; falls back to the visible count when 0
}

// BuildMetadata constructs metadata for prefix-based pagination.
func (s LoadMoreStrategy) BuildMetadata(params Params, total int) Metadata {
	visible := CalculateVisible(params.Shown, total)
	step := s.Step
	if step <= 0 {
		step = visible
	}
	return Metadata{
		Total:     total,
		Shown:     visible,
		HasMore:   visible < total,
		NextShown: CalculateNextShown(visible, step, total),
	}
}
