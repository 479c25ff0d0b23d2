package command

// ExecutionMode tells a resolver in which context a handler chain is requested.
//
// It is supplied with every resolution and is never stored on commands or handlers.
// Resolvers use it to decide which wrappers to compose: a saving wrapper, for example,
// belongs to the full pipeline but must not run again when a handler invokes another
// handler as a sub-step.
type ExecutionMode int

const (
	// ModeCore requests the chain that always runs, including when invoked from inside another handler.
	ModeCore ExecutionMode = iota

	// ModeFullPipelineOnly requests the chain used for top-level dispatch.
	ModeFullPipelineOnly
)

func (m ExecutionMode) String() string {
	switch m {
	case ModeCore:
		return "core"
	case ModeFullPipelineOnly:
		return "full_pipeline_only"
	default:
		return "unknown"
	}
}
