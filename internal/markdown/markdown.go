package markdown

import (
	"iter"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// CommonMark extracts destinations from a goldmark AST. Destinations are reported as
// goldmark decodes them (angle brackets removed, backslash escapes resolved).
type CommonMark struct{}

func (CommonMark) Name() ExtractorName { return ExtractorCommonMark }

// Targets yields inline, image and reference-definition destinations. Autolinks are
// always absolute URLs and are left out.
func (CommonMark) Targets(body string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, link := range ExtractLinks([]byte(body), Options{}) {
			if link.Kind == LinkKindAuto {
				continue
			}
			if !yield(link.Destination) {
				return
			}
		}
	}
}

// ExtractLinks parses a Markdown body and extracts link-like constructs.
func ExtractLinks(body []byte, _ Options) []Link {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Reference-style usages resolve to Link nodes too; their definitions are added below.
			if len(node.Destination) > 0 {
				links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
			}
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not in the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	// CommonMark rejects unbracketed destinations containing spaces, which are common in
	// hand-written docs ("./User Manual.md"). Pick those up with a permissive pass.
	links = append(links, extractPermissiveLinks(body)...)

	return links
}
