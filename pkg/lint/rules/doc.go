// Package rules provides the built-in docstring lint rules for gopydoclint.
//
// # Rule Domains
//
//   - Content:
//
//   - D200: unnecessary-multiline-docstring - One-line docstring should fit on one line
//
//   - D400: missing-trailing-period - First line should end with a period
//
//   - D419: empty-docstring - Docstring is empty
//
//   - Whitespace:
//
//   - D206: docstring-tab-indentation - Docstring should be indented with spaces
//
//   - D207: docstring-under-indented - Docstring is under-indented
//
//   - D210: surrounding-whitespace - No whitespace around docstring text
//
//   - Quotes and prefixes:
//
//   - D300: triple-single-quotes - Use triple double quotes
//
//   - D301: escape-sequence-in-docstring - Use r""" if any backslashes appear
//
//   - UP025: unicode-kind-prefix - Remove the redundant u prefix
//
//   - Markdown (opt-in):
//
//   - DOC100: docstring-code-fence-language - Fenced code blocks should name a language
//
// Importing the package registers every rule with lint.DefaultRegistry.
package rules
