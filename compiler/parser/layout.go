package parser

// The layout pass inserts the virtual braces and semicolons that
// indentation implies, so the parser only ever sees fully delimited
// blocks.  A block keyword (where, mutual, abstract, private, postulate,
// primitive) opens an explicit block when a "{" follows and otherwise a
// virtual one at the column of the next token.  Inside a virtual block a
// line starting at exactly the block's column begins a new declaration
// and a line left of it ends the block; explicit blocks turn the rule
// off and are separated with ";" as written.  The whole file is one
// virtual block at the column of its first token.

type layoutCtx struct {
	col      int
	explicit bool
}

func layout(toks []token) []token {
	out := make([]token, 0, len(toks)+len(toks)/4)
	var stack []layoutCtx
	prevLine := 0
	open := true
	for _, tok := range toks {
		if open {
			open = false
			switch {
			case tok.kind == tokLBrace:
				stack = append(stack, layoutCtx{explicit: true})
				out = append(out, tok)
				prevLine = tok.line
				continue
			case tok.kind == tokEOF || tok.col <= topCol(stack):
				// Nothing indented follows: the block is empty.
				out = append(out, virtual(tokVLBrace, tok), virtual(tokVRBrace, tok))
			default:
				out = append(out, virtual(tokVLBrace, tok), tok)
				stack = append(stack, layoutCtx{col: tok.col})
				prevLine = tok.line
				open = opensBlock(tok.kind)
				continue
			}
		}

		if tok.kind == tokEOF {
			for _, ctx := range stack {
				if !ctx.explicit {
					out = append(out, virtual(tokVRBrace, tok))
				}
			}
			out = append(out, tok)
			return out
		}

		if tok.line > prevLine {
			for len(stack) > 0 && !top(stack).explicit && tok.col < top(stack).col {
				out = append(out, virtual(tokVRBrace, tok))
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 && !top(stack).explicit && tok.col == top(stack).col {
				out = append(out, virtual(tokVSemi, tok))
			}
		}
		prevLine = tok.line

		if tok.kind == tokRBrace && len(stack) > 0 && top(stack).explicit {
			stack = stack[:len(stack)-1]
		}
		out = append(out, tok)
		open = opensBlock(tok.kind)
	}
	return out
}

func opensBlock(k tokKind) bool {
	switch k {
	case tokWhere, tokMutual, tokAbstract, tokPrivate, tokPostulate, tokPrimitive:
		return true
	}
	return false
}

func top(stack []layoutCtx) layoutCtx { return stack[len(stack)-1] }

func topCol(stack []layoutCtx) int {
	if len(stack) == 0 {
		return 0
	}
	return top(stack).col
}

func virtual(kind tokKind, at token) token {
	return token{kind: kind, pos: at.pos, end: at.pos, line: at.line, col: at.col}
}
