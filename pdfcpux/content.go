// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfcpux

import (
	"strconv"

	"github.com/paperglass/preview"
)

// avgGlyphWidth approximates glyph advance as a fraction of the font size
// when no width information is available from the content stream.
const avgGlyphWidth = 0.5

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArrayOpen
	tokArrayClose
	tokOperator
)

type token struct {
	kind tokenKind
	str  string
	num  float64
}

// scanTextRuns walks the text operators of a page content stream and
// produces positioned runs. Only literal-string text is handled; graphics
// state (cm) and glyph metrics are ignored, so positions are anchors, not
// tight boxes.
func scanTextRuns(content []byte) []preview.TextRun {
	toks := tokenize(content)

	var runs []preview.TextRun
	tm := preview.Identity()  // text matrix
	tlm := preview.Identity() // text line matrix
	fontSize := 1.0
	leading := 0.0
	inText := false

	// operand stack of the most recent tokens before an operator
	var stack []token
	popNums := func(n int) []float64 {
		vals := make([]float64, n)
		for i := n - 1; i >= 0; i-- {
			if len(stack) == 0 {
				return vals
			}
			t := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if t.kind == tokNumber {
				vals[i] = t.num
			}
		}
		return vals
	}
	popString := func() (string, bool) {
		for len(stack) > 0 {
			t := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if t.kind == tokString {
				return t.str, true
			}
		}
		return "", false
	}

	nextLine := func(tx, ty float64) {
		step := preview.AffineTransform{A: 1, D: 1, E: tx, F: ty}
		tlm = step.Mul(tlm)
		tm = tlm
	}
	emit := func(text string) {
		if !inText || text == "" {
			return
		}
		trm := preview.AffineTransform{A: fontSize, D: fontSize}.Mul(tm)
		runs = append(runs, preview.TextRun{
			Text:      text,
			Transform: trm,
			Width:     avgGlyphWidth * fontSize * float64(len(text)),
			Height:    fontSize,
		})
	}

	for _, t := range toks {
		if t.kind != tokOperator {
			stack = append(stack, t)
			continue
		}
		switch t.str {
		case "BT":
			inText = true
			tm = preview.Identity()
			tlm = preview.Identity()
		case "ET":
			inText = false
		case "Tf":
			v := popNums(1)
			if v[0] > 0 {
				fontSize = v[0]
			}
		case "TL":
			leading = popNums(1)[0]
		case "Td":
			v := popNums(2)
			nextLine(v[0], v[1])
		case "TD":
			v := popNums(2)
			leading = -v[1]
			nextLine(v[0], v[1])
		case "Tm":
			v := popNums(6)
			tm = preview.AffineTransform{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}
			tlm = tm
		case "T*":
			nextLine(0, -leading)
		case "Tj":
			if s, ok := popString(); ok {
				emit(s)
			}
		case "'":
			nextLine(0, -leading)
			if s, ok := popString(); ok {
				emit(s)
			}
		case "\"":
			if s, ok := popString(); ok {
				nextLine(0, -leading)
				emit(s)
			}
		case "TJ":
			// concatenate the array's strings, dropping kerning numbers
			var text string
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].kind == tokArrayOpen {
					for _, el := range stack[i+1:] {
						if el.kind == tokString {
							text += el.str
						}
					}
					stack = stack[:i]
					break
				}
			}
			emit(text)
		}
		if t.str != "Tj" && t.str != "'" && t.str != "\"" && t.str != "TJ" {
			// operators consume what they need; drop leftovers
			stack = stack[:0]
		}
	}
	return runs
}

func tokenize(content []byte) []token {
	var toks []token
	i := 0
	n := len(content)
	isDelim := func(b byte) bool {
		switch b {
		case ' ', '\t', '\r', '\n', '\f', '\x00', '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
			return true
		}
		return false
	}
	for i < n {
		b := content[i]
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == '\x00':
			i++
		case b == '%':
			for i < n && content[i] != '\n' {
				i++
			}
		case b == '(':
			s, next := readLiteralString(content, i)
			toks = append(toks, token{kind: tokString, str: s})
			i = next
		case b == '<':
			// hex strings and dict openers are skipped; CID text degrades
			// to absent runs
			i++
			for i < n && content[i] != '>' {
				i++
			}
			i++
		case b == '[':
			toks = append(toks, token{kind: tokArrayOpen})
			i++
		case b == ']':
			toks = append(toks, token{kind: tokArrayClose})
			i++
		case b == '/':
			start := i + 1
			i++
			for i < n && !isDelim(content[i]) {
				i++
			}
			toks = append(toks, token{kind: tokName, str: string(content[start:i])})
		case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
			start := i
			i++
			for i < n && !isDelim(content[i]) {
				i++
			}
			if f, err := strconv.ParseFloat(string(content[start:i]), 64); err == nil {
				toks = append(toks, token{kind: tokNumber, num: f})
			}
		default:
			start := i
			for i < n && !isDelim(content[i]) {
				i++
			}
			if i == start {
				i++
				continue
			}
			toks = append(toks, token{kind: tokOperator, str: string(content[start:i])})
		}
	}
	return toks
}

// readLiteralString reads a ( ... ) string starting at open. Handles
// nested parentheses and backslash escapes.
func readLiteralString(content []byte, open int) (string, int) {
	var out []byte
	depth := 1
	i := open + 1
	for i < len(content) && depth > 0 {
		b := content[i]
		switch b {
		case '\\':
			if i+1 < len(content) {
				i++
				switch content[i] {
				case 'n':
					out = append(out, '\n')
				case 'r':
					out = append(out, '\r')
				case 't':
					out = append(out, '\t')
				case 'b', 'f':
					// rarely meaningful in text runs
				default:
					out = append(out, content[i])
				}
			}
			i++
		case '(':
			depth++
			out = append(out, b)
			i++
		case ')':
			depth--
			if depth > 0 {
				out = append(out, b)
			}
			i++
		default:
			out = append(out, b)
			i++
		}
	}
	return string(out), i
}
