package cartocss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/styling"
)

const maxVariableDepth = 16

func parseError(line int, message string, args ...interface{}) errorsx.Error {
	return errorsx.Wrap(styling.ErrParse, "format", "cartocss", "line", line, "reason", fmt.Sprintf(message, args...))
}

// Parse reads a style sheet written in a subset of cartocss: variables, a Map block for the
// background, and blocks of declarations selected by layer and attribute filters. Nested blocks
// are not supported.
func Parse(id, stylesheet string) (*Style, errorsx.Error) {
	style := &Style{
		id:        id,
		variables: make(map[string]string),
	}

	var rawRules []*rawRule
	var currentRule *rawRule
	var currentStatement strings.Builder
	line := 1
	statementLine := 1

	styleSheetLen := len(stylesheet)
	for i := 0; i < styleSheetLen; i++ {
		thisChar := stylesheet[i]
		if i+1 < styleSheetLen {
			// handle 2 character sequences
			switch stylesheet[i : i+2] {
			case TokenOpenBlockComment:
				idxEnd := strings.Index(stylesheet[i+2:], TokenCloseBlockComment)
				if idxEnd == -1 {
					return nil, parseError(line, "unterminated comment")
				}
				line += strings.Count(stylesheet[i:i+2+idxEnd], string(TokenNewLine))
				i += idxEnd + 3
				continue
			case TokenOpenLineComment:
				idxNewLine := strings.IndexByte(stylesheet[i:], TokenNewLine)
				if idxNewLine == -1 {
					i = styleSheetLen
					continue
				}
				// stop before the newline so it is counted below
				i += idxNewLine - 1
				continue
			}
		}

		if strings.TrimSpace(currentStatement.String()) == "" {
			statementLine = line
		}

		switch thisChar {
		case TokenNewLine:
			line++
			currentStatement.WriteByte(' ')
		case TokenSingleQuote, TokenDoubleQuote:
			idxEnd := strings.IndexByte(stylesheet[i+1:], thisChar)
			if idxEnd == -1 {
				return nil, parseError(line, "unterminated string")
			}
			currentStatement.WriteString(stylesheet[i : i+idxEnd+2])
			i += idxEnd + 1
		case TokenOpenBlock:
			if currentRule != nil {
				return nil, parseError(line, "nested blocks are not supported")
			}
			var err errorsx.Error
			currentRule, err = parseSelectors(currentStatement.String(), statementLine)
			if err != nil {
				return nil, err
			}
			currentStatement.Reset()
		case TokenCloseBlock:
			if currentRule == nil {
				return nil, parseError(line, "unexpected %q", string(TokenCloseBlock))
			}
			// the last declaration in a block does not need a terminating semi-colon
			err := processStatement(style, currentRule, currentStatement.String(), statementLine)
			if err != nil {
				return nil, err
			}
			currentStatement.Reset()
			rawRules = append(rawRules, currentRule)
			currentRule = nil
		case TokenEndStatement:
			err := processStatement(style, currentRule, currentStatement.String(), statementLine)
			if err != nil {
				return nil, err
			}
			currentStatement.Reset()
		default:
			currentStatement.WriteByte(thisChar)
		}
	}

	if currentRule != nil {
		return nil, parseError(line, "unterminated block")
	}

	if strings.TrimSpace(currentStatement.String()) != "" {
		return nil, parseError(line, "unterminated statement: %q", strings.TrimSpace(currentStatement.String()))
	}

	for _, raw := range rawRules {
		err := style.compileRule(raw)
		if err != nil {
			return nil, err
		}
	}

	return style, nil
}

func processStatement(style *Style, currentRule *rawRule, statement string, line int) errorsx.Error {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return nil
	}

	idxColon := strings.Index(statement, ":")
	if idxColon == -1 {
		return parseError(line, "expected %q in statement %q", ":", statement)
	}
	name := strings.TrimSpace(statement[:idxColon])
	value := strings.TrimSpace(statement[idxColon+1:])
	if name == "" || value == "" {
		return parseError(line, "incomplete statement %q", statement)
	}

	if currentRule == nil {
		if name[0] != TokenVariable {
			return parseError(line, "couldn't process statement: %q", statement)
		}
		style.variables[strings.TrimPrefix(name, string(TokenVariable))] = value
		return nil
	}

	currentRule.Declarations = append(currentRule.Declarations, declaration{
		Property: name,
		Value:    value,
		Line:     line,
	})
	return nil
}

func parseSelectors(text string, line int) (*rawRule, errorsx.Error) {
	raw := new(rawRule)
	for _, selectorText := range strings.Split(text, ",") {
		selectorText = strings.TrimSpace(selectorText)
		if selectorText == "" {
			return nil, parseError(line, "empty selector in %q", text)
		}

		if selectorText == mapSelector {
			raw.IsMap = true
			continue
		}

		sel, err := parseSelector(selectorText, line)
		if err != nil {
			return nil, err
		}
		raw.Selectors = append(raw.Selectors, sel)
	}

	if raw.IsMap && len(raw.Selectors) != 0 {
		return nil, parseError(line, "%s can not be combined with other selectors", mapSelector)
	}

	return raw, nil
}

func parseSelector(text string, line int) (selector, errorsx.Error) {
	var sel selector

	rest := text
	switch {
	case strings.HasPrefix(rest, wildcardSelector):
		rest = rest[1:]
	case rest[0] == TokenLayer:
		idxEnd := strings.IndexByte(rest, TokenOpenFilter)
		if idxEnd == -1 {
			idxEnd = len(rest)
		}
		sel.Layer = strings.TrimSpace(rest[1:idxEnd])
		if sel.Layer == "" {
			return sel, parseError(line, "empty layer name in selector %q", text)
		}
		rest = rest[idxEnd:]
	}

	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return sel, nil
		}
		if rest[0] != TokenOpenFilter {
			return sel, parseError(line, "unexpected %q in selector %q", rest, text)
		}

		idxClose := strings.IndexByte(rest, TokenCloseFilter)
		if idxClose == -1 {
			return sel, parseError(line, "unterminated filter in selector %q", text)
		}

		f, err := parseFilter(rest[1:idxClose], line)
		if err != nil {
			return sel, err
		}
		sel.Filters = append(sel.Filters, f)
		rest = rest[idxClose+1:]
	}
}

func parseFilter(text string, line int) (filter, errorsx.Error) {
	var f filter

	operator := "="
	idxOperator := strings.Index(text, "!=")
	if idxOperator != -1 {
		operator = "!="
		f.Negate = true
	} else {
		idxOperator = strings.Index(text, "=")
	}

	if idxOperator == -1 {
		return f, parseError(line, "filter %q has no comparison", text)
	}

	f.Key = unquote(strings.TrimSpace(text[:idxOperator]))
	f.Value = unquote(strings.TrimSpace(text[idxOperator+len(operator):]))
	if f.Key == "" {
		return f, parseError(line, "filter %q has no key", text)
	}

	return f, nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == TokenSingleQuote || first == TokenDoubleQuote) {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func (s *Style) resolveValue(value string, line int) (string, errorsx.Error) {
	for depth := 0; strings.HasPrefix(value, string(TokenVariable)); depth++ {
		if depth == maxVariableDepth {
			return "", parseError(line, "variable %q refers to itself", value)
		}

		resolved, ok := s.variables[strings.TrimPrefix(value, string(TokenVariable))]
		if !ok {
			return "", parseError(line, "unknown variable %q", value)
		}
		value = resolved
	}

	return unquote(value), nil
}

func (s *Style) compileRule(raw *rawRule) errorsx.Error {
	r := &rule{Selectors: raw.Selectors}

	for _, decl := range raw.Declarations {
		value, err := s.resolveValue(decl.Value, decl.Line)
		if err != nil {
			return err
		}

		if raw.IsMap {
			if decl.Property != "background-color" {
				continue
			}
			s.background, err = styling.ParseColor(value)
			if err != nil {
				return parseError(decl.Line, "bad background-color %q: %s", value, err.Error())
			}
			continue
		}

		err = applyDeclaration(&r.Props, decl.Property, value)
		if err != nil {
			return parseError(decl.Line, "bad value for %s: %s", decl.Property, err.Error())
		}
	}

	if !raw.IsMap {
		s.rules = append(s.rules, r)
	}

	return nil
}

func applyDeclaration(props *ruleProps, property, value string) errorsx.Error {
	var err errorsx.Error
	switch property {
	case "line-color":
		props.LineColor, err = styling.ParseColor(value)
	case "line-width":
		props.LineWidth, err = parseNumber(value)
	case "line-dasharray":
		props.LineDash, err = parseNumberList(value)
	case "polygon-fill":
		props.PolygonFill, err = styling.ParseColor(value)
	case "marker-fill":
		props.MarkerFill, err = styling.ParseColor(value)
	case "marker-width":
		props.MarkerWidth, err = parseNumber(value)
	case "text-fill":
		props.TextFill, err = styling.ParseColor(value)
	case "text-size":
		props.TextSize, err = parseNumber(value)
	default:
		// properties without an effect on legend samples are accepted and ignored
	}
	return err
}

func parseNumber(value string) (float64, errorsx.Error) {
	number, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "px"), 64)
	if err != nil {
		return 0, errorsx.Wrap(err)
	}
	if number < 0 {
		return 0, errorsx.Errorf("negative value %v", number)
	}
	return number, nil
}

func parseNumberList(value string) ([]float64, errorsx.Error) {
	var numbers []float64
	for _, part := range strings.Split(value, ",") {
		number, err := parseNumber(part)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, number)
	}
	return numbers, nil
}
