// Package compare decides whether the output of the tool-under-test matches its reference file.
//
// Plain tokenized text is compared line by line, ignoring whitespace. XML output is first passed
// through an explicit list of normalization Rules that blank out or delete the parts of the
// document that legitimately differ between runs, such as the generation timestamp; the result is
// then compared the same way. The comparison works on text, not on a parsed document tree.
package compare
