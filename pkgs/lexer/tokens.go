package lexer

// TokenType represents the lexical class of a token in the Butane
// expression grammar.
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals and names
	IDENT  // newData, $game, isAuthed
	NUMBER // 42, 3.14
	STRING // 'text' or "text"
	TRUE   // true
	FALSE  // false
	NULL   // null

	// Punctuation
	DOT      // .
	COMMA    // ,
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	QUESTION // ?
	COLON    // :

	// Operators
	NOT     // !
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	LT      // <
	LT_EQ   // <=
	GT      // >
	GT_EQ   // >=
	EQ      // ==
	NOT_EQ  // !=
	SEQ     // ===
	SNOT_EQ // !==
	AND_AND // &&
	OR_OR   // ||
)

var tokenNames = map[TokenType]string{
	EOF:      "EOF",
	ILLEGAL:  "ILLEGAL",
	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	TRUE:     "true",
	FALSE:    "false",
	NULL:     "null",
	DOT:      ".",
	COMMA:    ",",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	QUESTION: "?",
	COLON:    ":",
	NOT:      "!",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	LT:       "<",
	LT_EQ:    "<=",
	GT:       ">",
	GT_EQ:    ">=",
	EQ:       "==",
	NOT_EQ:   "!=",
	SEQ:      "===",
	SNOT_EQ:  "!==",
	AND_AND:  "&&",
	OR_OR:    "||",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexical token with its source position.
type Token struct {
	Type   TokenType
	Text   string // raw source text; decoded content for STRING tokens
	Offset int    // byte offset in the input, used for error carets
}

// Symbol returns the token's display text for error messages. Operator
// tokens carry no Text, so the static name is used instead.
func (t Token) Symbol() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Type.String()
}

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
}
