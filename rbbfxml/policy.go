package rbbfxml

import "fmt"

// TrailerPolicy selects what happens when a group trailer does not echo the
// group's id.
type TrailerPolicy uint8

const (
	// TrailerWarn logs the mismatch and returns it as a warning.
	TrailerWarn TrailerPolicy = iota
	// TrailerStrict fails the enclosing block.
	TrailerStrict
	// TrailerIgnore only counts the mismatch in Stats.
	TrailerIgnore
)

var trailerPolicies = [...]string{
	TrailerWarn:   "warn",
	TrailerStrict: "strict",
	TrailerIgnore: "ignore",
}

func (p TrailerPolicy) String() string {
	if int(p) < len(trailerPolicies) {
		return trailerPolicies[p]
	}
	return fmt.Sprintf("TrailerPolicy(%d)", uint8(p))
}

// ParseTrailerPolicy returns the policy with the given name. An empty name
// selects TrailerWarn.
func ParseTrailerPolicy(s string) (TrailerPolicy, error) {
	if s == "" {
		return TrailerWarn, nil
	}
	for p, name := range trailerPolicies {
		if name == s {
			return TrailerPolicy(p), nil
		}
	}
	return 0, fmt.Errorf("unknown trailer policy %q", s)
}

// BlockErrorPolicy selects what happens to a block whose body fails to
// decode.
type BlockErrorPolicy uint8

const (
	// BlockPartial emits the part of the body decoded before the failure,
	// with every open element closed.
	BlockPartial BlockErrorPolicy = iota
	// BlockOmit drops the block element entirely.
	BlockOmit
	// BlockAbort stops the conversion.
	BlockAbort
)

var blockErrorPolicies = [...]string{
	BlockPartial: "partial",
	BlockOmit:    "omit",
	BlockAbort:   "abort",
}

func (p BlockErrorPolicy) String() string {
	if int(p) < len(blockErrorPolicies) {
		return blockErrorPolicies[p]
	}
	return fmt.Sprintf("BlockErrorPolicy(%d)", uint8(p))
}

// ParseBlockErrorPolicy returns the policy with the given name. An empty
// name selects BlockPartial.
func ParseBlockErrorPolicy(s string) (BlockErrorPolicy, error) {
	if s == "" {
		return BlockPartial, nil
	}
	for p, name := range blockErrorPolicies {
		if name == s {
			return BlockErrorPolicy(p), nil
		}
	}
	return 0, fmt.Errorf("unknown block error policy %q", s)
}
