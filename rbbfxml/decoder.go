// Package rbbfxml converts RbBF project files to XML.
//
// A conversion reads the container header, then decodes each block in turn.
// Plain blocks are decoded into a tree of tagged items and rendered as
// elements named by the tag tables; opaque blocks are reproduced as a Hex
// element holding the block's bytes. The root element carries the version of
// the IDE that saved the project, which is read from the Project block, so
// output is held by an emit.Emitter until that block has been decoded.
package rbbfxml

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/xojotools/rbbf"
	"github.com/xojotools/rbbf/emit"
	"github.com/xojotools/rbbf/endian"
	"github.com/xojotools/rbbf/errors"
	"github.com/xojotools/rbbf/tags"
)

// ProjectBlock is the name of the block that carries the saved-in version.
const ProjectBlock = "Project"

// Decoder converts project files. The zero value is ready to use: trailer
// mismatches are warnings, failed blocks are emitted partially, and strings
// are read as ASCII.
type Decoder struct {
	Trailers    TrailerPolicy
	BlockErrors BlockErrorPolicy
	Charset     Charset

	// FallbackVersion is written to the root element when the project does
	// not carry a readable version. If empty, the package FallbackVersion is
	// used.
	FallbackVersion string

	// Logger receives diagnostics. If nil, nothing is logged.
	Logger *zerolog.Logger

	// Stats, if not nil, is filled in by Convert.
	Stats *Stats
}

// XMLDeclaration is the first line of every document.
const XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

const rootEnd = "</RBProject>"

// rootStart returns the template of the opening root tag.
func rootStart(h rbbf.Header) string {
	return `<RBProject version="` + emit.Placeholder +
		`" FormatVersion="` + strconv.FormatInt(int64(h.FormatVersion), 10) +
		`" MinIDEVersion="` + strconv.FormatInt(int64(h.MinIDEVersion), 10) + `">`
}

// ReadHeader reads and checks the container header at the current position
// of r.
func ReadHeader(r *endian.Reader) (h rbbf.Header, err error) {
	if h.Signature, err = r.Tag(); err != nil {
		return h, HeaderError{Cause: err}
	}
	if h.Signature != rbbf.TagSignature {
		return h, HeaderError{Cause: fmt.Errorf("%w %q", ErrInvalidSig, h.Signature.Printable())}
	}
	if h.FormatVersion, err = r.Int32(); err != nil {
		return h, HeaderError{Cause: err}
	}
	if h.FormatVersion != 1 && h.FormatVersion != 2 {
		return h, HeaderError{Cause: ErrUnrecognizedVersion(h.FormatVersion)}
	}
	if err = r.Int32s(&h.Reserved1, &h.Reserved2, &h.FirstBlock); err != nil {
		return h, HeaderError{Cause: err}
	}
	h.MinIDEVersion = rbbf.DefaultMinIDEVersion
	if h.FormatVersion == 2 {
		if h.MinIDEVersion, err = r.Int32(); err != nil {
			return h, HeaderError{Cause: err}
		}
	}
	if int64(h.FirstBlock) < h.Size() || int64(h.FirstBlock) > r.Size() {
		return h, HeaderError{Cause: fmt.Errorf("%w: %d", ErrFirstBlock, h.FirstBlock)}
	}
	return h, nil
}

// readBlock reads the header and body of the block whose tag has just been
// read at off.
func readBlock(r *endian.Reader, tables *tags.Tables, off int64) (b *rbbf.Block, name string, err error) {
	b = &rbbf.Block{Offset: off}
	h := &b.Header
	var typ int32
	if err := r.Int32s(&typ, &h.ID, &h.Revision, &h.Size, &h.KeyFormat, &h.Key1, &h.Key2); err != nil {
		return nil, "", DataError{Offset: off, Cause: err}
	}
	h.Type = rbbf.Tag(typ)
	if name, err = tables.BlockName(h.Type); err != nil {
		return nil, "", TagError{Err: ErrUnknownBlockTag, Tag: h.Type, Offset: off + 4}
	}
	if h.Size < rbbf.BlockFrameSize {
		return nil, name, DataError{Offset: off, Cause: fmt.Errorf("%w: %d", ErrBlockSize, h.Size)}
	}
	if b.Body, err = r.Bytes(h.BodySize()); err != nil {
		return nil, name, DataError{Offset: off, Cause: err}
	}
	if name == ProjectBlock {
		h.Key1 = 0
		h.Key2 = 0
	}
	return b, name, nil
}

// conversion is the state of one call to Convert.
type conversion struct {
	d        Decoder
	log      zerolog.Logger
	r        *endian.Reader
	tables   *tags.Tables
	em       *emit.Emitter
	stats    *Stats
	warn     errors.Errors
	fallback string
}

// Convert decodes a project from r and writes the XML document to sink, one
// line at a time. The sink is not closed.
//
// Problems that do not stop the conversion are returned in warn. If err is
// not nil, the document is incomplete: lines that were still being held are
// discarded and the root element is not closed.
func (d Decoder) Convert(sink emit.Sink, r io.ReadSeeker) (warn, err error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if sink == nil {
		return nil, errors.New("nil sink")
	}
	c := &conversion{
		d:        d,
		log:      zerolog.Nop(),
		em:       emit.New(sink),
		stats:    d.Stats,
		fallback: d.FallbackVersion,
	}
	if d.Logger != nil {
		c.log = *d.Logger
	}
	if c.stats == nil {
		c.stats = &Stats{}
	}
	if c.fallback == "" {
		c.fallback = FallbackVersion
	}
	if err = c.run(r); err != nil {
		c.em.Discard()
	}
	c.log.Debug().
		Int("warnings", len(c.warn)).
		Int("trailer_mismatches", c.warn.Count(ErrGroupTrailerMismatch)).
		Int("failed_blocks", c.stats.FailedBlocks).
		Msg("conversion finished")
	return c.warn.Return(), err
}

func (c *conversion) run(rs io.ReadSeeker) error {
	r, err := endian.NewReader(rs, binary.BigEndian)
	if err != nil {
		return err
	}
	c.r = r

	h, err := ReadHeader(r)
	c.stats.reset(h)
	if err != nil {
		return err
	}
	if c.tables, err = tags.For(h.FormatVersion); err != nil {
		return HeaderError{Cause: err}
	}
	c.log.Debug().
		Int32("format", c.tables.FormatVersion()).
		Int("block_types", c.tables.BlockCount()).
		Int32("min_ide_version", h.MinIDEVersion).
		Int32("first_block", h.FirstBlock).
		Msg("header")
	if err := r.Seek(int64(h.FirstBlock)); err != nil {
		return DataError{Offset: int64(h.FirstBlock), Cause: err}
	}

	if err := c.em.Line(XMLDeclaration); err != nil {
		return err
	}
	if err := c.em.Template(rootStart(h)); err != nil {
		return err
	}

	for index := 0; ; index++ {
		if r.EOF() {
			c.warn = c.warn.Append(DataError{Offset: r.Offset(), Cause: ErrMissingEOF})
			c.log.Warn().Int64("offset", r.Offset()).Msg("stream ended without end-of-file tag")
			break
		}
		off := r.Offset()
		tag, err := r.Tag()
		if err != nil {
			return DataError{Offset: off, Cause: err}
		}
		if tag == rbbf.TagEOF {
			if n := r.Remaining(); n > 0 {
				c.log.Debug().Int64("bytes", n).Msg("ignoring data after end-of-file tag")
			}
			break
		}
		if tag != rbbf.TagBlock {
			return TagError{Err: ErrUnknownBlockTag, Tag: tag, Offset: off}
		}
		if err := c.block(index, off); err != nil {
			return err
		}
	}

	if err := c.em.Line(rootEnd); err != nil {
		return err
	}
	if c.em.State() == emit.Buffering {
		c.log.Debug().Msg("no project block; using fallback version")
		return c.resolve(c.fallback, true)
	}
	return nil
}

func (c *conversion) resolve(version string, fallback bool) error {
	held := c.em.Pending()
	if _, err := c.em.Resolve(version); err != nil {
		return err
	}
	c.log.Debug().Str("version", c.em.Version()).Int("lines", held).Msg("flushed held lines")
	c.stats.Version = c.em.Version()
	c.stats.VersionFallback = fallback
	return nil
}

// block decodes and emits one block. Only errors that stop the conversion
// are returned.
func (c *conversion) block(index int, off int64) error {
	b, name, err := readBlock(c.r, c.tables, off)
	if err != nil {
		return err
	}
	h := b.Header
	log := c.log.With().
		Int("block", index).
		Str("type", name).
		Int32("id", h.ID).
		Logger()
	c.stats.addBlock(name)

	rd := renderer{tables: c.tables, charset: c.d.Charset}
	var token string
	var found bool
	var berr error
	if h.Opaque() {
		frame := b.Frame()
		rd.opaque(name, h.ID, frame)
		c.stats.addOpaque(name, h.ID, frame)
		log.Debug().Int32("key_format", h.KeyFormat).Int("bytes", len(frame)).Msg("opaque block")
	} else {
		p := newBodyParser(b.Body, c.tables, c.d.Trailers == TrailerStrict)
		nodes, perr := p.parseBody()
		rd.block(name, h.ID, nodes)
		c.stats.addNodes(nodes)
		c.stats.addUnknown(rd.unknown)
		for tag, n := range rd.unknown {
			log.Debug().Str("tag", tag.Printable()).Int("count", n).Msg("unknown field omitted")
		}
		c.trailers(index, name, b, p.mismatches, log)
		if name == ProjectBlock {
			token, found = savedInVersion(nodes, c.d.Charset)
		}
		if perr != nil {
			berr = BlockError{Index: index, Type: h.Type, Name: name, ID: h.ID, Offset: off, Cause: perr}
		}
	}

	lines := rd.lines
	if berr != nil {
		c.stats.FailedBlocks++
		switch c.d.BlockErrors {
		case BlockAbort:
			return berr
		case BlockOmit:
			c.stats.OmittedBlocks++
			lines = nil
			log.Warn().Err(berr).Msg("omitting block")
		default:
			log.Warn().Err(berr).Msg("emitting partial block")
		}
		c.warn = c.warn.Append(berr)
	}
	for _, line := range lines {
		if err := c.em.Line(line); err != nil {
			return err
		}
	}

	if name != ProjectBlock || c.em.State() != emit.Buffering {
		return nil
	}
	if !found {
		log.Debug().Str("version", c.fallback).Msg("project has no saved-in version")
		return c.resolve(c.fallback, true)
	}
	version, ok := ResolveVersion(token)
	if !ok {
		log.Warn().Str("token", token).Str("version", c.fallback).Msg("unreadable saved-in version")
		return c.resolve(c.fallback, true)
	}
	log.Debug().Str("token", token).Str("version", version).Msg("resolved version")
	return c.resolve(version, false)
}

// trailers applies the trailer policy to the mismatches found in a block.
func (c *conversion) trailers(index int, name string, b *rbbf.Block, mismatches []TrailerError, log zerolog.Logger) {
	c.stats.TrailerMismatches += len(mismatches)
	if c.d.Trailers != TrailerWarn {
		return
	}
	for _, m := range mismatches {
		log.Warn().Err(m).Msg("group trailer mismatch")
		c.warn = c.warn.Append(BlockError{
			Index:  index,
			Type:   b.Header.Type,
			Name:   name,
			ID:     b.Header.ID,
			Offset: b.Offset,
			Cause:  m,
		})
	}
}

// savedInVersion returns the first saved-in version field among the
// top-level items of a project body.
func savedInVersion(nodes []*rbbf.Node, cs Charset) (string, bool) {
	for _, n := range nodes {
		if n.Kind == rbbf.NodeField && n.Tag == rbbf.TagSavedInVersion {
			return Text(n.Value, cs), true
		}
	}
	return "", false
}
