package molecule

import (
	"strings"
	"unicode"

	"github.com/lewisviz/lewis/pkg/errors"
)

// Parse parses the full notation text into a Molecule.
//
// The input is split into statements on ';'; blank statements are ignored.
// Each statement must match `Label Charge? '[' Conn(,Conn)* ']'`. Parsing is
// pure: re-parsing identical text yields an identical Molecule, and atom
// order follows input order.
//
// Errors carry the offending statement text and one of the codes
// INVALID_STATEMENT, INVALID_CONNECTION, UNKNOWN_DIRECTION, UNKNOWN_BOND,
// DUPLICATE_ATOM, or UNDEFINED_REFERENCE.
func Parse(input string) (*Molecule, error) {
	if err := errors.ValidateNotation(input); err != nil {
		return nil, err
	}

	m := New()
	for _, stmt := range strings.Split(input, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		atom, err := parseStatement(stmt)
		if err != nil {
			return nil, err
		}
		if err := m.AddAtom(atom); err != nil {
			return nil, err
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseStatement parses one `Label Charge? [conn, ...]` statement.
func parseStatement(stmt string) (Atom, error) {
	s := scanner{input: stmt}

	label := s.takeWord()
	if label == "" {
		return Atom{}, statementErr(stmt, "expected atom label")
	}

	charge := ""
	if s.peek() == '{' {
		var ok bool
		charge, ok = s.takeDelimited('{', '}')
		if !ok {
			return Atom{}, statementErr(stmt, "unterminated charge annotation")
		}
	}

	body, ok := s.takeDelimited('[', ']')
	if !ok {
		return Atom{}, statementErr(stmt, "expected bracketed connection list")
	}
	if !s.atEnd() {
		return Atom{}, statementErr(stmt, "trailing input after connection list")
	}

	conns, err := parseConnections(stmt, body)
	if err != nil {
		return Atom{}, err
	}

	return Atom{Label: label, Charge: charge, Connections: conns}, nil
}

// parseConnections parses the comma-separated connection list body.
func parseConnections(stmt, body string) ([]Connection, error) {
	var conns []Connection
	for _, tok := range strings.Split(body, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		conn, err := parseConnection(stmt, tok)
		if err != nil {
			return nil, err
		}
		conns = append(conns, conn)
	}
	return conns, nil
}

// parseConnection parses a single connection token. Two forms exist:
//
//	direction::                lone pair
//	direction:bondSym:target   bond
//
// Anything else (including a wrong colon count) is an INVALID_CONNECTION.
func parseConnection(stmt, tok string) (Connection, error) {
	parts := strings.Split(tok, ":")
	if len(parts) != 3 {
		return Connection{}, errors.New(errors.ErrCodeInvalidConnection,
			"connection %q matches neither lone-pair nor bond form (in statement %q)", tok, stmt)
	}

	dir, err := ParseDirection(parts[0])
	if err != nil {
		return Connection{}, err
	}

	// Lone pair: both segments after the direction are empty.
	if parts[1] == "" && parts[2] == "" {
		return Connection{Kind: ConnLonePair, Dir: dir}, nil
	}
	if parts[1] == "" || parts[2] == "" {
		return Connection{}, errors.New(errors.ErrCodeInvalidConnection,
			"connection %q matches neither lone-pair nor bond form (in statement %q)", tok, stmt)
	}

	order, err := ParseBondSymbol(parts[1])
	if err != nil {
		return Connection{}, err
	}

	return Connection{Kind: ConnBond, Dir: dir, Order: order, Target: parts[2]}, nil
}

func statementErr(stmt, reason string) error {
	return errors.New(errors.ErrCodeInvalidStatement,
		"statement %q does not match atom grammar: %s", stmt, reason)
}

// scanner is a minimal cursor over one statement. The notation is small
// enough that a hand-written scanner beats a regex grammar: token boundaries
// stay explicit and error messages can point at what was expected.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) atEnd() bool {
	for i := s.pos; i < len(s.input); i++ {
		if !unicode.IsSpace(rune(s.input[i])) {
			return false
		}
	}
	return true
}

// takeWord consumes a run of word characters (letters, digits, underscore).
func (s *scanner) takeWord() string {
	start := s.pos
	for s.pos < len(s.input) {
		c := rune(s.input[s.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		s.pos++
	}
	return s.input[start:s.pos]
}

// takeDelimited consumes open, the enclosed text, and close. Returns the
// full delimited text for '{' (charge is echoed verbatim, braces included)
// and the inner text for '[' (the connection list body).
func (s *scanner) takeDelimited(open, close byte) (string, bool) {
	if s.peek() != open {
		return "", false
	}
	start := s.pos
	s.pos++
	for s.pos < len(s.input) {
		if s.input[s.pos] == close {
			s.pos++
			if open == '{' {
				return s.input[start:s.pos], true
			}
			return s.input[start+1 : s.pos-1], true
		}
		s.pos++
	}
	return "", false
}
