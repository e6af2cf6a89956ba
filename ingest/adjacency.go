package ingest

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/TFMV/springgraph/physics"
)

// maxPrealloc bounds the capacity reserved from an untrusted node count.
const maxPrealloc = 1 << 16

// Options control how input is turned into a graph.
type Options struct {
	// Strict rejects an incomplete trailing link pair instead of dropping it.
	Strict bool

	// Params is the force model of the resulting graph. The zero value
	// selects physics.DefaultParams.
	Params physics.Params

	// MaxSpeed is the per-node speed cap. Zero selects physics.DefaultMaxSpeed.
	MaxSpeed float64
}

func (o Options) newGraph() *physics.Graph {
	p := o.Params
	if p == (physics.Params{}) {
		p = physics.DefaultParams()
	}
	return physics.New(physics.WithParams(p))
}

func (o Options) newNode(pos physics.Vec2) physics.Node {
	return physics.NewNodeWithMaxSpeed(pos, o.MaxSpeed)
}

type token struct {
	text string
	line int
}

// tokenizer yields whitespace-separated tokens together with their line.
type tokenizer struct {
	sc   *bufio.Scanner
	line int
	buf  []string
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (token, bool, error) {
	for len(t.buf) == 0 {
		if !t.sc.Scan() {
			return token{}, false, t.sc.Err()
		}
		t.line++
		t.buf = strings.Fields(t.sc.Text())
	}
	tok := token{text: t.buf[0], line: t.line}
	t.buf = t.buf[1:]
	return tok, true, nil
}

// ParseAdjacency reads the adjacency list format:
//
//	<nodeCount>
//	<x1> <y1>
//	...
//	<xN> <yN>
//	<first> <second>    (1-based, repeated until end of input)
//
// Any error rejects the whole graph.
func ParseAdjacency(r io.Reader, opts Options) (*physics.Graph, error) {
	tz := newTokenizer(r)

	countTok, ok, err := tz.next()
	if err != nil {
		return nil, wrapError(KindMalformedInput, 0, err, "read node count")
	}
	if !ok {
		return nil, newError(KindMalformedInput, 0, "empty input: missing node count")
	}
	count, err := strconv.Atoi(countTok.text)
	if err != nil || count < 0 {
		return nil, newError(KindMalformedInput, countTok.line, "node count %q is not a non-negative integer", countTok.text)
	}

	nodes := make([]physics.Node, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		x, err := readCoordinate(tz, i+1, "x")
		if err != nil {
			return nil, err
		}
		y, err := readCoordinate(tz, i+1, "y")
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, opts.newNode(physics.V(x, y)))
	}

	var links []physics.Link
	for {
		first, ok, err := tz.next()
		if err != nil {
			return nil, wrapError(KindMalformedInput, tz.line, err, "read link")
		}
		if !ok {
			break
		}

		// A lone trailing token is not a link, whatever it contains.
		second, ok, err := tz.next()
		if err != nil {
			return nil, wrapError(KindMalformedInput, tz.line, err, "read link")
		}
		if !ok {
			if opts.Strict {
				return nil, newError(KindMalformedInput, first.line, "incomplete link: %q has no second endpoint", first.text)
			}
			break
		}

		a, err := parseIndex(first, count)
		if err != nil {
			return nil, err
		}
		b, err := parseIndex(second, count)
		if err != nil {
			return nil, err
		}
		if a == b {
			return nil, newError(KindInvalidReference, second.line, "link %d-%d connects a node to itself", a+1, b+1)
		}
		links = append(links, physics.NewLink(a, b))
	}

	return assemble(opts, nodes, links)
}

func readCoordinate(tz *tokenizer, node int, axis string) (float64, error) {
	tok, ok, err := tz.next()
	if err != nil {
		return 0, wrapError(KindMalformedInput, tz.line, err, "read node %d %s", node, axis)
	}
	if !ok {
		return 0, newError(KindMalformedInput, tz.line, "unexpected end of input: node %d has no %s coordinate", node, axis)
	}
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return 0, newError(KindMalformedInput, tok.line, "node %d %s coordinate %q is not a number", node, axis, tok.text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, newError(KindMalformedInput, tok.line, "node %d %s coordinate %q is not finite", node, axis, tok.text)
	}
	return v, nil
}

// parseIndex converts a 1-based link endpoint into a node handle.
func parseIndex(tok token, count int) (physics.NodeID, error) {
	idx, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, newError(KindMalformedInput, tok.line, "link index %q is not an integer", tok.text)
	}
	if idx < 1 || idx > count {
		return 0, newError(KindInvalidReference, tok.line, "link index %d out of range [1, %d]", idx, count)
	}
	return physics.NodeID(idx - 1), nil
}

// assemble builds the graph only once every node and link is known to be valid.
func assemble(opts Options, nodes []physics.Node, links []physics.Link) (*physics.Graph, error) {
	g := opts.newGraph()
	if _, err := g.AddNodes(nodes...); err != nil {
		return nil, fmt.Errorf("add nodes: %w", err)
	}
	if err := g.AddLinks(links...); err != nil {
		return nil, wrapError(KindInvalidReference, 0, err, "add links")
	}
	return g, nil
}
