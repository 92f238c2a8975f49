package cartocss

const (
	TokenEndStatement = ';'
	TokenNewLine      = '\n'
	TokenOpenBlock    = '{'
	TokenCloseBlock   = '}'
	TokenSingleQuote  = '\''
	TokenDoubleQuote  = '"'
	TokenVariable     = '@'
	TokenLayer        = '#'
	TokenOpenFilter   = '['
	TokenCloseFilter  = ']'
)

// 2-char tokens
const (
	TokenOpenBlockComment  = "/*"
	TokenCloseBlockComment = "*/"
	TokenOpenLineComment   = "//"
)

const (
	mapSelector      = "Map"
	wildcardSelector = "*"
)
