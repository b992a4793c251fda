package rbbfxml

import (
	"encoding/hex"
	"strconv"

	"github.com/xojotools/rbbf"
	"golang.org/x/crypto/blake2b"
)

// Stats describes what a conversion found. Pass a non-nil Stats to a
// Decoder to have it filled.
type Stats struct {
	FormatVersion int32
	MinIDEVersion int32

	// Version is the version written to the root element. VersionFallback is
	// set if it is not derived from the project.
	Version         string
	VersionFallback bool

	// Number of blocks overall, and per block name.
	Blocks     int
	BlockTypes map[string]int `json:",omitempty"`

	// Number of blocks reproduced as bytes, and the BLAKE2b-256 digest of
	// each, keyed by "Name/ID".
	OpaqueBlocks  int
	OpaqueDigests map[string]string `json:",omitempty"`

	// Number of blocks whose body failed to decode, and how many of those
	// were left out of the output.
	FailedBlocks  int
	OmittedBlocks int

	Groups     int
	Properties int
	Fields     int

	// Number of occurrences of each field tag missing from the field table.
	UnknownFields map[string]int `json:",omitempty"`

	TrailerMismatches int
}

func (s *Stats) reset(h rbbf.Header) {
	*s = Stats{
		FormatVersion: h.FormatVersion,
		MinIDEVersion: h.MinIDEVersion,
	}
}

func (s *Stats) addBlock(name string) {
	s.Blocks++
	if s.BlockTypes == nil {
		s.BlockTypes = map[string]int{}
	}
	s.BlockTypes[name]++
}

func (s *Stats) addOpaque(name string, id int32, frame []byte) {
	s.OpaqueBlocks++
	if s.OpaqueDigests == nil {
		s.OpaqueDigests = map[string]string{}
	}
	s.OpaqueDigests[name+"/"+strconv.FormatInt(int64(id), 10)] = Digest(frame)
}

func (s *Stats) addNodes(nodes []*rbbf.Node) {
	for _, n := range nodes {
		n.Walk(func(n *rbbf.Node, depth int) bool {
			switch n.Kind {
			case rbbf.NodeField:
				s.Fields++
			case rbbf.NodeGroup:
				s.Groups++
			case rbbf.NodeProperty:
				s.Properties++
				// Record fields are not counted separately.
				return false
			}
			return true
		})
	}
}

func (s *Stats) addUnknown(unknown map[rbbf.Tag]int) {
	if len(unknown) == 0 {
		return
	}
	if s.UnknownFields == nil {
		s.UnknownFields = map[string]int{}
	}
	for tag, n := range unknown {
		s.UnknownFields[tag.Printable()] += n
	}
}

// Digest returns the hex-encoded BLAKE2b-256 digest of b.
func Digest(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
