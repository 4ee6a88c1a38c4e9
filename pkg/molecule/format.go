package molecule

import "strings"

// Format re-serializes the molecule into notation form. Parsing the result
// yields a Molecule equivalent to the original: same labels in the same
// order, same charges, same connections.
func (m *Molecule) Format() string {
	stmts := make([]string, 0, m.Len())
	for _, a := range m.Atoms() {
		stmts = append(stmts, formatAtom(a))
	}
	return strings.Join(stmts, ";")
}

func formatAtom(a *Atom) string {
	var b strings.Builder
	b.WriteString(a.Label)
	b.WriteString(a.Charge)
	b.WriteByte('[')
	for i, c := range a.Connections {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}
