package fixtures

import (
	"os"
	"path/filepath"
)

// XMLDocumentID is the document identifier passed to the tool for XML output. Reference files are
// generated with the same identifier.
const XMLDocumentID = "test"

// ReferenceKind is the shape of a case's golden output.
type ReferenceKind int

const (
	// AlignedTokens is tokenized text produced in verbose mode (file extension tok.V).
	AlignedTokens ReferenceKind = iota
	// PlainTokens is plain tokenized text (file extension tok).
	PlainTokens
	// StructuredXML is an XML annotation document (file extension xml).
	StructuredXML
)

// resolutionOrder is the priority in which reference files are looked for.
var resolutionOrder = []ReferenceKind{AlignedTokens, PlainTokens, StructuredXML} //nolint:gochecknoglobals

// Extension is the file extension, without the leading dot, of references of this kind. The
// produced output file uses the same extension.
func (k ReferenceKind) Extension() string {
	switch k {
	case AlignedTokens:
		return "tok.V"
	case PlainTokens:
		return "tok"
	case StructuredXML:
		return "xml"
	default:
		return ""
	}
}

// ModeFlags are the tool arguments that make it produce output of this kind.
func (k ReferenceKind) ModeFlags() []string {
	switch k {
	case AlignedTokens:
		return []string{"-v"}
	case StructuredXML:
		return []string{"-x", XMLDocumentID}
	default:
		return nil
	}
}

// Structured returns true if output of this kind needs normalization before it is compared.
func (k ReferenceKind) Structured() bool {
	return k == StructuredXML
}

func (k ReferenceKind) String() string {
	switch k {
	case AlignedTokens:
		return "aligned tokens"
	case PlainTokens:
		return "plain tokens"
	case StructuredXML:
		return "XML"
	default:
		return "unknown"
	}
}

// Reference is the golden file that was found for a test case.
type Reference struct {
	Kind ReferenceKind
	Path string
}

// OutputName is the base name that the produced output for this case should have.
func (r Reference) OutputName(tc TestCase) string {
	return tc.Stem() + "." + r.Kind.Extension()
}

// Resolve looks in the case's directory for its reference file, trying aligned tokens, then
// plain tokens, then XML. It returns false if there is none.
func Resolve(tc TestCase) (Reference, bool) {
	for _, kind := range resolutionOrder {
		path := filepath.Join(tc.Dir, tc.Stem()+"."+kind.Extension())
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return Reference{Kind: kind, Path: path}, true
		}
	}
	return Reference{}, false
}
