package rbbfxml

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/xojotools/rbbf"
	"github.com/xojotools/rbbf/emit"
	"github.com/xojotools/rbbf/internal/fixture"
)

const root1 = `<RBProject version="2019r1.1" FormatVersion="1" MinIDEVersion="201201">`

func convert(t *testing.T, d Decoder, f fixture.File) ([]string, error, error) {
	t.Helper()
	sink := &emit.MemorySink{}
	warn, err := d.Convert(sink, bytes.NewReader(f.Bytes()))
	if sink.Closed {
		t.Fatal("Convert closed the sink")
	}
	return sink.Lines, warn, err
}

func wellFormed(t *testing.T, lines []string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(strings.Join(lines, "\n")); err != nil {
		t.Fatalf("output is not well formed: %v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "RBProject" {
		t.Fatalf("unexpected root element")
	}
	return root
}

func project(fn func(b *fixture.Builder)) fixture.Block {
	return fixture.Block{Type: "Proj", ID: 7, Body: fixture.Body(fn)}
}

func TestConvertProject(t *testing.T) {
	lines, warn, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{
		project(func(b *fixture.Builder) {
			b.String("PSIV", "2019.011")
			b.String("name", "App")
			b.Int("Ver1", 3)
			b.Double("itHd", 1.5)
		}),
	}})
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	want := []string{
		XMLDeclaration,
		root1,
		`<block type="Project" ID="7">`,
		`<ProjectSavedInVers>2019.011</ProjectSavedInVers>`,
		`<ItemName>App</ItemName>`,
		`<MajorVersion>3</MajorVersion>`,
		`<HeightDouble>1.50</HeightDouble>`,
		`</block>`,
		`</RBProject>`,
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("output (-want +got):\n%s", diff)
	}
	root := wellFormed(t, lines)
	if blocks := root.SelectElements("block"); len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
}

func TestConvertFormat2(t *testing.T) {
	var stats Stats
	lines, _, err := convert(t, Decoder{Stats: &stats}, fixture.File{
		FormatVersion: 2,
		MinIDEVersion: 201901,
		Gap:           8,
		Blocks: []fixture.Block{
			project(func(b *fixture.Builder) { b.String("PSIV", "2018.04") }),
			{Type: "pDWn", ID: 9, Body: fixture.Body(func(b *fixture.Builder) {
				b.String("Name", "Window1")
			})},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if lines[1] != `<RBProject version="2018r4" FormatVersion="2" MinIDEVersion="201901">` {
		t.Fatalf("unexpected root %q", lines[1])
	}
	if lines[5] != `<block type="DesktopWindow" ID="9">` || lines[6] != `<ObjName>Window1</ObjName>` {
		t.Fatalf("unexpected block lines %q", lines[5:7])
	}
	wellFormed(t, lines)
	if stats.Blocks != 2 || stats.BlockTypes["DesktopWindow"] != 1 || stats.Version != "2018r4" || stats.VersionFallback {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestDeferredVersion(t *testing.T) {
	// The version is found after several lines have been produced, in the
	// second block of the file.
	lines, _, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{
		{Type: "pFol", ID: 1, Body: fixture.Body(func(b *fixture.Builder) {
			b.String("name", "Folder")
			b.String("text", "see "+emit.Placeholder)
		})},
		project(func(b *fixture.Builder) {
			b.String("name", "App")
			b.Int("Ver1", 1)
			b.String("PSIV", "2021.021")
		}),
	}})
	if err != nil {
		t.Fatal(err)
	}
	if lines[1] != `<RBProject version="2021r2.1" FormatVersion="1" MinIDEVersion="201201">` {
		t.Fatalf("root not resolved: %q", lines[1])
	}
	if lines[4] != `<ItemText>see {{version}}</ItemText>` {
		t.Fatalf("project text was rewritten: %q", lines[4])
	}
	for i, line := range lines {
		if i != 4 && strings.Contains(line, emit.Placeholder) {
			t.Fatalf("placeholder left in line %d: %q", i, line)
		}
	}
}

func TestFallbackVersion(t *testing.T) {
	for _, tt := range []struct {
		name   string
		blocks []fixture.Block
	}{
		{"no project", []fixture.Block{{Type: "pFol", ID: 1}}},
		{"no version field", []fixture.Block{project(func(b *fixture.Builder) { b.String("name", "App") })}},
		{"unreadable version", []fixture.Block{project(func(b *fixture.Builder) { b.String("PSIV", "") })}},
		{"no blocks", nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var stats Stats
			lines, _, err := convert(t, Decoder{Stats: &stats}, fixture.File{Blocks: tt.blocks})
			if err != nil {
				t.Fatal(err)
			}
			if lines[1] != root1 {
				t.Fatalf("unexpected root %q", lines[1])
			}
			if !stats.VersionFallback {
				t.Fatal("fallback not recorded")
			}
			wellFormed(t, lines)
		})
	}

	lines, _, _ := convert(t, Decoder{FallbackVersion: "2005r1"}, fixture.File{})
	if !strings.Contains(lines[1], `version="2005r1"`) {
		t.Fatalf("configured fallback not used: %q", lines[1])
	}

	var stats Stats
	lines, _, _ = convert(t, Decoder{Stats: &stats}, fixture.File{Blocks: []fixture.Block{
		project(func(b *fixture.Builder) { b.String("PSIV", "2020") }),
	}})
	if !strings.Contains(lines[1], `version="2020r1"`) || stats.VersionFallback {
		t.Fatalf("year of a short version not kept: %q", lines[1])
	}
}

func TestFirstVersionWins(t *testing.T) {
	lines, _, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{
		project(func(b *fixture.Builder) {
			b.String("PSIV", "2019.011")
			b.String("PSIV", "2020.01")
		}),
		project(func(b *fixture.Builder) { b.String("PSIV", "2021.01") }),
	}})
	if err != nil {
		t.Fatal(err)
	}
	if lines[1] != root1 {
		t.Fatalf("unexpected root %q", lines[1])
	}
	n := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "<RBProject") {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("root tag written %d times", n)
	}
}

func TestStringLength(t *testing.T) {
	body := fixture.Body(func(b *fixture.Builder) {
		// Five characters stored in eight bytes.
		b.StringBytes("name", []byte("abcde"), 'x')
		b.Int("Ver1", 2)
	})
	lines, _, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{{Type: "pFol", ID: 1, Body: body}}})
	if err != nil {
		t.Fatal(err)
	}
	if lines[3] != `<ItemName>abcde</ItemName>` || lines[4] != `<MajorVersion>2</MajorVersion>` {
		t.Fatalf("unexpected lines %q", lines[3:5])
	}
}

func TestControlCharacters(t *testing.T) {
	body := fixture.Body(func(b *fixture.Builder) {
		b.StringBytes("SCtx", []byte("a\r\nb\x00"), 0)
		b.String("text", "tab\there")
	})
	lines, _, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{{Type: "pObj", ID: 3, Body: body}}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`<ScriptText><Hex bytes="5">610D0A6200</Hex></ScriptText>`,
		`<ItemText><Hex bytes="8">7461620968657265</Hex></ItemText>`,
	}
	if diff := cmp.Diff(want, lines[3:5]); diff != "" {
		t.Fatalf("hex lines (-want +got):\n%s", diff)
	}
	root := wellFormed(t, lines)
	hex := root.FindElement("block/ScriptText/Hex")
	if hex == nil || hex.SelectAttrValue("bytes", "") != "5" {
		t.Fatal("Hex element not found")
	}
}

func TestEscaping(t *testing.T) {
	body := fixture.Body(func(b *fixture.Builder) {
		b.String("text", `a < b & c > 'd' "e"`)
		b.String("defn", "&amp;hFF00FF")
		b.String("data", "&amp;c000000")
		b.String("decl", "&amp;x")
		b.Rect("rEdt", 1, -2, 300, 40)
	})
	lines, _, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{{Type: "pObj", ID: 3, Body: body}}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`<ItemText>a &lt; b &amp; c &gt; &apos;d&apos; "e"</ItemText>`,
		`<ItemDef>&amp;hFF00FF</ItemDef>`,
		`<ItemData>&amp;c000000</ItemData>`,
		`<ItemDeclaration>&amp;amp;x</ItemDeclaration>`,
		`<EditBounds><Rect left="1" top="-2" width="300" height="40"/></EditBounds>`,
	}
	if diff := cmp.Diff(want, lines[3:8]); diff != "" {
		t.Fatalf("escaped lines (-want +got):\n%s", diff)
	}
	wellFormed(t, lines)
}

func TestOpaqueBlock(t *testing.T) {
	body := []byte{0x00, 0x01, 0xFE, 0xFF, 'G', 'r', 'u', 'p', 0x0A}
	var stats Stats
	lines, _, err := convert(t, Decoder{Stats: &stats}, fixture.File{Blocks: []fixture.Block{
		{Type: "pObj", ID: 5, Revision: 2, KeyFormat: 1, Key1: 10, Key2: 11, Body: body},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 6 {
		t.Fatalf("expected a single hex line in the block, got %q", lines)
	}
	wantHex := EncodeHex(append([]byte{
		'B', 'l', 'o', 'k',
		'p', 'O', 'b', 'j',
		0, 0, 0, 5,
		0, 0, 0, 2,
		0, 0, 0, 41,
		0, 0, 0, 1,
		0, 0, 0, 10,
		0, 0, 0, 11,
	}, body...))
	if lines[3] != wantHex {
		t.Fatalf("expected %q, got %q", wantHex, lines[3])
	}
	if !strings.HasPrefix(lines[3], `<Hex bytes="41">`) {
		t.Fatalf("byte count must be 32 + body length: %q", lines[3])
	}
	if stats.OpaqueBlocks != 1 || len(stats.OpaqueDigests["Module/5"]) != 64 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestOpaqueProjectKeys(t *testing.T) {
	lines, _, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{
		{Type: "Proj", ID: 1, KeyFormat: 2, Key1: 10, Key2: 11},
	}})
	if err != nil {
		t.Fatal(err)
	}
	// Key fields are the last eight bytes of the header.
	if !strings.HasSuffix(lines[3], "000000020000000000000000</Hex>") {
		t.Fatalf("project keys not cleared: %q", lines[3])
	}
}

func TestGroups(t *testing.T) {
	body := fixture.Body(func(b *fixture.Builder) {
		b.String("name", "Window1")
		b.Group("Ctrl", 100, func(g *fixture.Builder) {
			g.String("Name", "Button1")
			g.Group("CBhv", 101, func(g *fixture.Builder) {
				g.Int("Vsbl", 1)
			})
		})
		// Icon is also a plain field tag.
		b.String("Icon", "app.icns")
		b.Group("FDef", 102, func(g *fixture.Builder) {
			g.String("name", "inWrapper")
			g.Group("CBhv", 106, func(g *fixture.Builder) {
				g.Int("Vsbl", 0)
			})
		})
		b.Group("CPal", 103, func(g *fixture.Builder) {
			g.String("name", "hidden")
			g.Group("clrR", 104, func(g *fixture.Builder) {
				g.Int("clrt", 0)
			})
		})
		b.Group("PDef", 105, func(g *fixture.Builder) {
			g.String("name", `Width"s`)
			g.String("type", "Integer")
			g.String("PrGp", "Position")
			g.Int("visi", 1)
			g.Int("Enco", 0x08000100)
			g.String("PVal", "<300>")
			g.Int("zzzz", 1)
		})
	})
	var stats Stats
	lines, warn, err := convert(t, Decoder{Stats: &stats}, fixture.File{Blocks: []fixture.Block{{Type: "pVew", ID: 2, Body: body}}})
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	want := []string{
		`<block type="Window" ID="2">`,
		`<ItemName>Window1</ItemName>`,
		`<Control>`,
		`<ObjName>Button1</ObjName>`,
		`<ControlBehavior>`,
		`<Visible>1</Visible>`,
		`</ControlBehavior>`,
		`</Control>`,
		`<Icon>app.icns</Icon>`,
		`<ControlBehavior>`,
		`<Visible>0</Visible>`,
		`</ControlBehavior>`,
		`<ColorRepresentation>`,
		`<ColorType>0</ColorType>`,
		`</ColorRepresentation>`,
		`<PropertyVal Name="Width&quot;s">&lt;300&gt;</PropertyVal>`,
		`</block>`,
	}
	if diff := cmp.Diff(want, lines[2:len(lines)-1]); diff != "" {
		t.Fatalf("output (-want +got):\n%s", diff)
	}
	wellFormed(t, lines)
	if stats.Groups != 6 || stats.Properties != 1 {
		t.Fatalf("unexpected group counts %+v", stats)
	}
}

func TestPropertyOf(t *testing.T) {
	n := &rbbf.Node{Kind: rbbf.NodeProperty, Tag: rbbf.MustTag("PDef"), Children: []*rbbf.Node{
		{Tag: rbbf.MustTag("name"), Value: rbbf.ValueString("Width")},
		{Tag: rbbf.MustTag("name"), Value: rbbf.ValueString("Ignored")},
		{Tag: rbbf.MustTag("visi"), Value: rbbf.ValueInt(1)},
		{Tag: rbbf.MustTag("Enco"), Value: rbbf.ValueString("not a number")},
		{Tag: rbbf.MustTag("PVal"), Value: rbbf.ValueInt(300)},
	}}
	want := Property{Name: "Width", Visibility: 1, Value: rbbf.ValueInt(300)}
	if diff := cmp.Diff(want, PropertyOf(n, CharsetASCII)); diff != "" {
		t.Fatalf("property (-want +got):\n%s", diff)
	}
}

func TestPadding(t *testing.T) {
	body := fixture.Body(func(b *fixture.Builder) {
		b.Padding("name", 6)
		b.Padding("Padn", 0)
		b.Int("Ver1", 4)
	})
	lines, _, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{{Type: "pFol", ID: 1, Body: body}}})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 6 || lines[3] != `<MajorVersion>4</MajorVersion>` {
		t.Fatalf("padding produced output: %q", lines)
	}
}

func TestUnknownFields(t *testing.T) {
	body := fixture.Body(func(b *fixture.Builder) {
		b.String("qqqq", "dropped")
		b.Int("qqqq", 1)
		b.String("Arch", "named empty")
		b.Int("Ver1", 1)
	})
	var stats Stats
	lines, warn, err := convert(t, Decoder{Stats: &stats}, fixture.File{Blocks: []fixture.Block{{Type: "pFol", ID: 1, Body: body}}})
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	if len(lines) != 6 || lines[3] != `<MajorVersion>1</MajorVersion>` {
		t.Fatalf("unknown fields emitted: %q", lines)
	}
	if diff := cmp.Diff(map[string]int{"qqqq": 2}, stats.UnknownFields); diff != "" {
		t.Fatalf("unknown fields (-want +got):\n%s", diff)
	}
}

func mismatchFile() fixture.File {
	return fixture.File{Blocks: []fixture.Block{{Type: "pVew", ID: 2, Body: fixture.Body(func(b *fixture.Builder) {
		b.GroupTrailer("Ctrl", 100, "Int ", 99, func(g *fixture.Builder) {
			g.String("Name", "Button1")
		})
		b.Int("Ver1", 1)
	})}}}
}

func TestTrailerMismatch(t *testing.T) {
	good := fixture.File{Blocks: []fixture.Block{{Type: "pVew", ID: 2, Body: fixture.Body(func(b *fixture.Builder) {
		b.Group("Ctrl", 100, func(g *fixture.Builder) { g.String("Name", "Button1") })
		b.Int("Ver1", 1)
	})}}}
	var stats Stats
	goodLines, warn, err := convert(t, Decoder{Stats: &stats}, good)
	if err != nil || warn != nil || stats.TrailerMismatches != 0 {
		t.Fatalf("valid trailer reported: %v, %v, %d", warn, err, stats.TrailerMismatches)
	}

	// Warn: same output, one warning.
	lines, warn, err := convert(t, Decoder{Stats: &stats}, mismatchFile())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(goodLines, lines); diff != "" {
		t.Fatalf("warn policy changed output (-want +got):\n%s", diff)
	}
	if !errors.Is(warn, ErrGroupTrailerMismatch) {
		t.Fatalf("expected trailer warning, got %v", warn)
	}
	var terr TrailerError
	if !errors.As(warn, &terr) || terr.ID != 100 || terr.EndID != 99 {
		t.Fatalf("unexpected trailer error %+v", terr)
	}
	if stats.TrailerMismatches != 1 {
		t.Fatalf("expected 1 mismatch, got %d", stats.TrailerMismatches)
	}

	// Ignore: counted only.
	lines, warn, err = convert(t, Decoder{Trailers: TrailerIgnore, Stats: &stats}, mismatchFile())
	if err != nil || warn != nil {
		t.Fatalf("ignore policy reported: %v, %v", warn, err)
	}
	if stats.TrailerMismatches != 1 || len(lines) != len(goodLines) {
		t.Fatalf("ignore policy: %d mismatches, %d lines", stats.TrailerMismatches, len(lines))
	}

	// Strict: the block fails at the group.
	lines, warn, err = convert(t, Decoder{Trailers: TrailerStrict, Stats: &stats}, mismatchFile())
	if err != nil {
		t.Fatal(err)
	}
	var berr BlockError
	if !errors.As(warn, &berr) || !errors.Is(berr, ErrGroupTrailerMismatch) {
		t.Fatalf("expected failed block, got %v", warn)
	}
	if stats.FailedBlocks != 1 {
		t.Fatalf("expected 1 failed block, got %d", stats.FailedBlocks)
	}
	for _, line := range lines {
		if line == `<MajorVersion>1</MajorVersion>` {
			t.Fatal("strict policy kept items after the mismatch")
		}
	}
	wellFormed(t, lines)

	_, _, err = convert(t, Decoder{Trailers: TrailerStrict, BlockErrors: BlockAbort}, mismatchFile())
	if !errors.Is(err, ErrGroupTrailerMismatch) {
		t.Fatalf("expected abort on mismatch, got %v", err)
	}
}

func badTypeFile() fixture.File {
	return fixture.File{Blocks: []fixture.Block{
		project(func(b *fixture.Builder) { b.String("PSIV", "2019.011") }),
		{Type: "pVew", ID: 2, Body: fixture.Body(func(b *fixture.Builder) {
			b.String("name", "Window1")
			b.Group("Ctrl", 100, func(g *fixture.Builder) {
				g.Tag("Name").Tag("Bogu").Int32(1)
			})
		})},
		{Type: "pFol", ID: 3, Body: fixture.Body(func(b *fixture.Builder) { b.String("name", "After") })},
	}}
}

func TestBlockErrors(t *testing.T) {
	// Partial: balanced body up to the failure, later blocks still decoded.
	var stats Stats
	lines, warn, err := convert(t, Decoder{Stats: &stats}, badTypeFile())
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(warn, ErrUnknownTypeTag) {
		t.Fatalf("expected unknown type warning, got %v", warn)
	}
	var terr TagError
	if !errors.As(warn, &terr) || terr.Tag.String() != "Bogu" {
		t.Fatalf("unexpected tag error %+v", terr)
	}
	want := []string{
		`<block type="Window" ID="2">`,
		`<ItemName>Window1</ItemName>`,
		`<Control>`,
		`</Control>`,
		`</block>`,
		`<block type="Folder" ID="3">`,
		`<ItemName>After</ItemName>`,
		`</block>`,
	}
	if diff := cmp.Diff(want, lines[5:len(lines)-1]); diff != "" {
		t.Fatalf("partial output (-want +got):\n%s", diff)
	}
	wellFormed(t, lines)
	if stats.FailedBlocks != 1 || stats.OmittedBlocks != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	// Omit: the failed block leaves no trace.
	lines, warn, err = convert(t, Decoder{BlockErrors: BlockOmit}, badTypeFile())
	if err != nil || warn == nil {
		t.Fatalf("unexpected result: %v, %v", warn, err)
	}
	if diff := cmp.Diff(want[5:], lines[5:len(lines)-1]); diff != "" {
		t.Fatalf("omit output (-want +got):\n%s", diff)
	}

	// Abort: the conversion stops.
	lines, _, err = convert(t, Decoder{BlockErrors: BlockAbort}, badTypeFile())
	var berr BlockError
	if !errors.As(err, &berr) || berr.Index != 1 || berr.Name != "Window" {
		t.Fatalf("expected block error, got %v", err)
	}
	for _, line := range lines {
		if line == rootEnd {
			t.Fatal("root closed after abort")
		}
	}
}

func TestTruncatedBody(t *testing.T) {
	body := fixture.Body(func(b *fixture.Builder) {
		b.Group("Ctrl", 100, func(g *fixture.Builder) {
			g.String("Name", "Button1")
		})
	})
	body = body[:len(body)-6]
	lines, warn, err := convert(t, Decoder{}, fixture.File{Blocks: []fixture.Block{{Type: "pVew", ID: 2, Body: body}}})
	if err != nil {
		t.Fatal(err)
	}
	if warn == nil {
		t.Fatal("expected warning for truncated body")
	}
	wellFormed(t, lines)
}

func TestFatalErrors(t *testing.T) {
	unknownTop := fixture.File{Blocks: []fixture.Block{{Type: "pFol", ID: 1}}}.Bytes()
	unknownTop = append(unknownTop[:len(unknownTop)-4], "Junk"...)

	unknownBlock := fixture.File{Blocks: []fixture.Block{{Type: "Zzzz", ID: 1}}}.Bytes()

	shortBlock := fixture.File{Blocks: []fixture.Block{{Type: "pFol", ID: 1, Size: 12}}}.Bytes()

	longBlock := fixture.File{Blocks: []fixture.Block{{Type: "pFol", ID: 1, Size: 400}}}.Bytes()

	badSig := fixture.File{}.Bytes()
	copy(badSig, "RbBX")

	badVersion := fixture.File{FormatVersion: 3}.Bytes()

	// The format 2 header is 24 bytes long.
	insideHeader := fixture.File{FormatVersion: 2, MinIDEVersion: 201901}.Bytes()
	binary.BigEndian.PutUint32(insideHeader[16:], 20)

	for _, tt := range []struct {
		name string
		data []byte
		err  error
	}{
		{"unknown top-level tag", unknownTop, ErrUnknownBlockTag},
		{"unknown block type", unknownBlock, ErrUnknownBlockTag},
		{"short block", shortBlock, ErrBlockSize},
		{"long block", longBlock, nil},
		{"signature", badSig, ErrInvalidSig},
		{"version", badVersion, ErrMalformedHeader},
		{"first block inside header", insideHeader, ErrFirstBlock},
		{"empty", nil, ErrMalformedHeader},
	} {
		t.Run(tt.name, func(t *testing.T) {
			sink := &emit.MemorySink{}
			_, err := Decoder{}.Convert(sink, bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if len(sink.Lines) != 0 {
				t.Fatalf("held lines were written: %q", sink.Lines)
			}
		})
	}

	var verr ErrUnrecognizedVersion
	_, err := Decoder{}.Convert(&emit.MemorySink{}, bytes.NewReader(badVersion))
	if !errors.As(err, &verr) || verr != 3 {
		t.Fatalf("expected unrecognized version 3, got %v", err)
	}
}

func TestMissingEOF(t *testing.T) {
	lines, warn, err := convert(t, Decoder{}, fixture.File{NoEOF: true, Blocks: []fixture.Block{{Type: "pFol", ID: 1}}})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(warn, ErrMissingEOF) {
		t.Fatalf("expected missing EOF warning, got %v", warn)
	}
	wellFormed(t, lines)
}

func TestCharset(t *testing.T) {
	body := fixture.Body(func(b *fixture.Builder) {
		b.StringBytes("text", []byte("caf\xE9"), 0)
	})
	f := fixture.File{Blocks: []fixture.Block{{Type: "pFol", ID: 1, Body: body}}}
	for _, tt := range []struct {
		charset Charset
		want    string
	}{
		{"", "<ItemText>caf?</ItemText>"},
		{CharsetLatin1, "<ItemText>café</ItemText>"},
		{CharsetWindows1252, "<ItemText>café</ItemText>"},
		{CharsetMacintosh, "<ItemText>cafÈ</ItemText>"},
	} {
		lines, _, err := convert(t, Decoder{Charset: tt.charset}, f)
		if err != nil {
			t.Fatal(err)
		}
		if lines[3] != tt.want {
			t.Errorf("charset %q: expected %q, got %q", tt.charset, tt.want, lines[3])
		}
	}
}
