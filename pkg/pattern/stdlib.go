package pattern

// Stdlib returns the built-in pattern library for Braggi's declaration
// grammar (spec.md §6): the header productions of FunctionDecl, RegionDecl,
// TypeDecl and ImportDecl, registered under names a Rule can bind against a
// run of cells via CompileToConstraint. Bodies (Block, Expr) are left
// unconstrained here — the header is enough to reject a keyword followed
// by a malformed declaration shape, which is this library's job; full
// expression grammar belongs to a richer Rule built on top of it.
func Stdlib() *Library {
	lib := NewLibrary()

	lib.Register("FunctionDeclHeader", NewSequence(
		NewLiteral("keyword", "fn"),
		NewToken("identifier"),
		NewLiteral("punctuation", "("),
	))

	lib.Register("RegionDeclHeader", NewSequence(
		NewLiteral("keyword", "region"),
		NewToken("identifier"),
		NewOptional(NewSequence(
			NewLiteral("keyword", "regime"),
			NewSuperposition(
				NewLiteral("keyword", "FIFO"),
				NewLiteral("keyword", "FILO"),
				NewLiteral("keyword", "SEQ"),
				NewLiteral("keyword", "RAND"),
			),
		)),
		NewLiteral("punctuation", "{"),
	))

	lib.Register("TypeDeclHeader", NewSequence(
		NewLiteral("keyword", "type"),
		NewToken("identifier"),
	))

	lib.Register("ImportDecl", NewSequence(
		NewLiteral("keyword", "import"),
		NewToken("identifier"),
	))

	lib.Register("PeriscopeHeader", NewSequence(
		NewLiteral("keyword", "periscope"),
	))

	return lib
}
