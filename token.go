package forth

import (
	"fmt"
	"strconv"
)

// TokenKind tags the variant held by a Token.
type TokenKind uint8

const (
	tokenNone TokenKind = iota

	TokenInt   // integer literal
	TokenAdd   // +      binary integer operation on the stack
	TokenSub   // -      binary integer operation on the stack
	TokenMul   // *      binary integer operation on the stack
	TokenDiv   // /      binary integer operation on the stack
	TokenDup   // dup    copy the top of the stack
	TokenDrop  // drop   discard the top of the stack
	TokenSwap  // swap   exchange the top two stack values
	TokenOver  // over   copy the second value up over the top
	TokenBegin // :      begin a definition
	TokenEnd   // ;      end a definition
	TokenRef   // <INTERNAL> reference to a defined word's body by id

	tokenMax
)

var tokenNames = [tokenMax]string{
	tokenNone:  "none",
	TokenInt:   "int",
	TokenAdd:   "+",
	TokenSub:   "-",
	TokenMul:   "*",
	TokenDiv:   "/",
	TokenDup:   "dup",
	TokenDrop:  "drop",
	TokenSwap:  "swap",
	TokenOver:  "over",
	TokenBegin: ":",
	TokenEnd:   ";",
	TokenRef:   "ref",
}

var keywords map[string]TokenKind

func init() {
	keywords = make(map[string]TokenKind, TokenEnd-TokenAdd+1)
	for kind := TokenAdd; kind <= TokenEnd; kind++ {
		keywords[tokenNames[kind]] = kind
	}
}

func (kind TokenKind) String() string {
	if kind < tokenMax {
		return tokenNames[kind]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(kind))
}

// Token is a single unit of program text after classification. Only one of
// Value or ID is meaningful, depending on Kind.
type Token struct {
	Kind  TokenKind
	Value int32 // TokenInt
	ID    uint  // TokenRef
}

func (tok Token) String() string {
	switch tok.Kind {
	case TokenInt:
		return strconv.FormatInt(int64(tok.Value), 10)
	case TokenRef:
		return fmt.Sprintf("@%d", tok.ID)
	default:
		return tok.Kind.String()
	}
}

func intToken(n int32) Token { return Token{Kind: TokenInt, Value: n} }
func refToken(id uint) Token { return Token{Kind: TokenRef, ID: id} }

// Tokenize classifies a single, already lowercased, unit of input. Keywords
// take precedence; anything else must parse as a signed 32-bit decimal
// integer, otherwise ok is false.
func Tokenize(unit string) (tok Token, ok bool) {
	if kind, defined := keywords[unit]; defined {
		return Token{Kind: kind}, true
	}
	if n, err := parseInt(unit); err == nil {
		return intToken(n), true
	}
	return Token{}, false
}

func parseInt(unit string) (int32, error) {
	n, err := strconv.ParseInt(unit, 10, 32)
	return int32(n), err
}
