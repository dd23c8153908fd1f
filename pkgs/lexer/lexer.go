package lexer

// ASCII character lookup tables for fast classification
var (
	isWhitespace [128]bool
	isDigit      [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool

	singleCharTokens [128]TokenType
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
		isDigit[i] = '0' <= ch && ch <= '9'
		letter := ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isIdentStart[i] = letter || ch == '_' || ch == '$'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
		singleCharTokens[i] = ILLEGAL
	}

	singleCharTokens['.'] = DOT
	singleCharTokens[','] = COMMA
	singleCharTokens['('] = LPAREN
	singleCharTokens[')'] = RPAREN
	singleCharTokens['['] = LBRACKET
	singleCharTokens[']'] = RBRACKET
	singleCharTokens['?'] = QUESTION
	singleCharTokens[':'] = COLON
	singleCharTokens['+'] = PLUS
	singleCharTokens['-'] = MINUS
	singleCharTokens['*'] = STAR
	singleCharTokens['/'] = SLASH
	singleCharTokens['%'] = PERCENT
}

// Lexer scans a Butane expression string into tokens.
type Lexer struct {
	input    string
	position int  // byte offset of ch
	readPos  int  // next read position
	ch       byte // current byte under examination
}

// New creates a Lexer over the given expression text.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns its tokens, always ending
// with an EOF token. Unexpected characters and unterminated strings come
// back as ILLEGAL tokens; the parser turns those into errors.
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.position = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch != 0 && l.ch < 128 && isWhitespace[l.ch] {
		l.readChar()
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	tok := Token{Offset: l.position}

	switch {
	case l.ch == 0:
		tok.Type = EOF
		return tok

	case l.ch == '\'' || l.ch == '"':
		return l.readString(l.ch)

	case l.ch == '=':
		return l.readEquals()

	case l.ch == '!':
		return l.readBang()

	case l.ch == '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok.Type = LT_EQ
		} else {
			tok.Type = LT
		}
		return tok

	case l.ch == '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok.Type = GT_EQ
		} else {
			tok.Type = GT
		}
		return tok

	case l.ch == '&':
		l.readChar()
		if l.ch == '&' {
			l.readChar()
			tok.Type = AND_AND
			return tok
		}
		tok.Type = ILLEGAL
		tok.Text = "&"
		return tok

	case l.ch == '|':
		l.readChar()
		if l.ch == '|' {
			l.readChar()
			tok.Type = OR_OR
			return tok
		}
		tok.Type = ILLEGAL
		tok.Text = "|"
		return tok

	case l.ch < 128 && isIdentStart[l.ch]:
		return l.readIdentifier()

	case l.ch < 128 && isDigit[l.ch]:
		return l.readNumber()

	case l.ch < 128 && singleCharTokens[l.ch] != ILLEGAL:
		tok.Type = singleCharTokens[l.ch]
		l.readChar()
		return tok

	default:
		tok.Type = ILLEGAL
		tok.Text = string(l.ch)
		l.readChar()
		return tok
	}
}

// readEquals handles == and ===. A bare = is not part of the grammar and
// comes back as ILLEGAL.
func (l *Lexer) readEquals() Token {
	tok := Token{Offset: l.position}
	l.readChar()
	if l.ch != '=' {
		tok.Type = ILLEGAL
		tok.Text = "="
		return tok
	}
	l.readChar()
	if l.ch == '=' {
		l.readChar()
		tok.Type = SEQ
		return tok
	}
	tok.Type = EQ
	return tok
}

// readBang handles !, !=, and !==.
func (l *Lexer) readBang() Token {
	tok := Token{Offset: l.position}
	l.readChar()
	if l.ch != '=' {
		tok.Type = NOT
		return tok
	}
	l.readChar()
	if l.ch == '=' {
		l.readChar()
		tok.Type = SNOT_EQ
		return tok
	}
	tok.Type = NOT_EQ
	return tok
}

func (l *Lexer) readIdentifier() Token {
	start := l.position
	for l.ch != 0 && l.ch < 128 && isIdentPart[l.ch] {
		l.readChar()
	}
	text := l.input[start:l.position]
	tok := Token{Type: IDENT, Text: text, Offset: start}
	if kw, ok := keywords[text]; ok {
		tok.Type = kw
	}
	return tok
}

func (l *Lexer) readNumber() Token {
	start := l.position
	for l.ch < 128 && isDigit[l.ch] {
		l.readChar()
	}
	if l.ch == '.' && l.peekChar() < 128 && isDigit[l.peekChar()] {
		l.readChar()
		for l.ch < 128 && isDigit[l.ch] {
			l.readChar()
		}
	}
	return Token{Type: NUMBER, Text: l.input[start:l.position], Offset: start}
}

// readString scans a single- or double-quoted string literal. The Text of
// the returned token is the decoded content without quotes. Supported
// escapes: \\ \' \" \n \t; anything else is kept verbatim.
func (l *Lexer) readString(quote byte) Token {
	start := l.position
	l.readChar() // opening quote

	var out []byte
	for {
		switch l.ch {
		case 0:
			// Unterminated string
			return Token{Type: ILLEGAL, Text: l.input[start:l.position], Offset: start}
		case quote:
			l.readChar()
			return Token{Type: STRING, Text: string(out), Offset: start}
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\', '\'', '"':
				out = append(out, l.ch)
			default:
				out = append(out, '\\', l.ch)
			}
			l.readChar()
		default:
			out = append(out, l.ch)
			l.readChar()
		}
	}
}
